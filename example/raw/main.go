// Command raw demonstrates sanitizing externally-influenced payloads
// before they are composed into a record, using package sanitizer's
// policy presets via Builder.WithSanitizePolicy.
package main

import (
	"fmt"
	"time"

	"github.com/asynclog/asynclog"
	"github.com/asynclog/asynclog/sanitizer"
)

func main() {
	fmt.Println("--- Sanitize Policy Demo ---")

	// A payload containing control characters, as if echoed back from an
	// untrusted client (e.g. a malformed request line).
	tainted := "GET /\x00\x07../../etc/passwd\tHTTP/1.1\n"

	fmt.Println("\n[1] Without sanitization (PolicyRaw, the default)")
	unsanitized, err := asynclog.NewBuilder("raw-demo").WithStdout().Build()
	must(err)
	unsanitized.Warn("raw-demo", 0, "suspicious request line: %s", tainted)
	time.Sleep(50 * time.Millisecond)
	must(unsanitized.Shutdown())

	fmt.Println("\n[2] With PolicyTxt sanitization (hex-encodes control chars)")
	sanitized, err := asynclog.NewBuilder("raw-demo-txt").
		WithStdout().
		WithSanitizePolicy(sanitizer.PolicyTxt).
		Build()
	must(err)
	sanitized.Warn("raw-demo-txt", 0, "suspicious request line: %s", tainted)
	time.Sleep(50 * time.Millisecond)
	must(sanitized.Shutdown())

	fmt.Println("\n--- Demo Complete ---")
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
