package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/goliatone/go-grits/pkg/server"
)

func (a *App) runServe(ctx context.Context, args []string) error {
	var (
		root string
		host string
		port int
		log  logFlags
	)
	fs := a.newFlagSet("serve", "serve --root DIR [--port N]")
	fs.StringVar(&root, "root", "", "Directory to serve (required).")
	fs.StringVar(&host, "host", "", "Interface to bind; empty binds all.")
	fs.IntVar(&port, "port", server.DefaultPort, "Port to serve on.")
	log.register(fs)

	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	if root == "" {
		fs.Usage()
		return usageError("serve: --root is required")
	}
	if port < 0 || port > 65535 {
		return usageError("serve: invalid port %d", port)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("serve: %s is not a directory", root)
	}

	logger, err := log.logger(a.errOut)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	fmt.Fprintf(a.out, "serving %s on %s\n", root, addr)

	handler := server.New(root, server.WithLogger(logger))
	return server.ListenAndServe(ctx, addr, handler, server.WithLogger(logger))
}
