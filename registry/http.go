package registry

import (
	"fmt"
	"sync/atomic"

	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

// introspectionServer is the optional, off-by-default HTTP endpoint
// described in spec.md §11: registered logger names plus a few cheap
// operational counters, rendered as JSON.
type introspectionServer struct {
	reg *Registry
	srv *fasthttp.Server
}

// ServeIntrospection starts (in a new goroutine) a minimal HTTP endpoint
// at addr reporting this Registry's logger names. It is additive
// operational tooling, not part of the core hand-off engine, and is never
// started unless a caller explicitly asks for it. ListenAndServe errors
// (e.g. address already in use) are delivered on the returned channel.
func (r *Registry) ServeIntrospection(addr string) (stop func() error, errc <-chan error) {
	is := &introspectionServer{reg: r}
	is.srv = &fasthttp.Server{
		Handler: is.handle,
		Name:    "asynclog-introspection",
	}

	ch := make(chan error, 1)
	go func() {
		ch <- is.srv.ListenAndServe(addr)
	}()

	return func() error { return is.srv.Shutdown() }, ch
}

func (is *introspectionServer) handle(ctx *fasthttp.RequestCtx) {
	if string(ctx.Path()) != "/loggers" {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString(`{"loggers":[`)
	for i, name := range is.reg.Names() {
		if i > 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(buf, "%q", name)
	}
	buf.WriteString(`],"dropped":`)
	fmt.Fprintf(buf, "%d", dropCounter.Load())
	buf.WriteString("}")

	ctx.SetContentType("application/json")
	ctx.SetBody(buf.Bytes())
}

// dropCounter is a process-wide, best-effort count of records that failed
// to push (spec.md §7's allocation-failure-under-Unsafe case); it exists
// purely for the introspection endpoint's operational visibility and is
// not part of the core hand-off contract.
var dropCounter atomic.Uint64

// reportDropped increments the introspection endpoint's drop counter.
func reportDropped() { dropCounter.Add(1) }
