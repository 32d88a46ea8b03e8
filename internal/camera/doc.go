// Package camera implements the asynchronous command/response core that
// drives an interactive gphoto2 --shell session.
//
// The shell never acknowledges commands explicitly; the only readiness
// signal is the trailing prompt text. The core therefore works entirely
// from a periodic poll: each tick classifies the accumulated output tail
// as idle, busy, or error, and when the shell is idle, consumes exactly
// one queued continuation against the output produced since the command
// that scheduled it.
//
// At most one command is ever in flight. Dispatching while busy is
// rejected, not queued; operations that logically need many commands
// (refreshing every configuration entry) expand by chaining: each
// continuation issues the next command once the previous round trip
// completes, so a refresh over N entries costs N idle/busy cycles.
//
// Nothing in this package blocks on the device. Callers wanting
// synchronous semantics poll Status or use WaitIdle, which sleeps between
// polls rather than blocking inside the tick handler.
package camera
