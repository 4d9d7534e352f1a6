package configs

import "time"

// HTTP defines configuration for the HTTP server. The Port specifies which
// port the server will bind to on all interfaces. ShutdownTimeout bounds
// how long in-flight requests may run after a termination signal.
type HTTP struct {
	// Port is the TCP port the HTTP server will listen on. Defaults to 8080.
	Port uint16 `env:"PORT" envDefault:"8080"`
	// ShutdownTimeout is the grace period given to srv.Shutdown. Requests
	// still running when it expires are cut off. Defaults to 5s.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}
