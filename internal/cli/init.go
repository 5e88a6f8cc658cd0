package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-grits"
	"github.com/goliatone/go-grits/pkg/config"
	"github.com/goliatone/go-grits/pkg/render"
	"github.com/goliatone/go-grits/pkg/render/template/gotemplate"
)

func (a *App) runInit(ctx context.Context, args []string) error {
	var (
		src   string
		force bool
	)
	fs := a.newFlagSet("init", "init [--src DIR] [--force]")
	fs.StringVar(&src, "src", ".", "Source directory the config is written to.")
	fs.BoolVar(&force, "force", false, "Overwrite an existing config file.")

	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return fmt.Errorf("init: %s is not a directory", src)
	}
	if existing, ok := config.Find(src); ok && !force {
		return &ExitError{Code: 1, Message: fmt.Sprintf("init: %s already exists (use --force to overwrite)", existing)}
	}

	cfg, err := a.promptConfig(ctx)
	if err != nil {
		if errors.Is(err, ErrAborted) {
			return &ExitError{Code: 1, Message: "init: aborted"}
		}
		return fmt.Errorf("init: %w", err)
	}

	path := filepath.Join(src, config.FileNames[0])
	if err := config.Write(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wrote %s\n", path)
	return nil
}

func (a *App) promptConfig(ctx context.Context) (config.Config, error) {
	var cfg config.Config

	css, err := a.prompter.Input(ctx, InputConfig{
		Message: "Stylesheets to link (comma separated)",
		Help:    "Paths relative to the source directory, e.g. static/site.css",
	})
	if err != nil {
		return cfg, err
	}
	js, err := a.prompter.Input(ctx, InputConfig{
		Message: "Scripts to load after the runtime (comma separated)",
		Help:    "Paths relative to the source directory, e.g. static/app.js",
	})
	if err != nil {
		return cfg, err
	}
	routes, err := a.prompter.Input(ctx, InputConfig{
		Message:   "Dynamic routes (comma separated)",
		Help:      "Client-side route patterns such as /users/:id",
		Validator: validateRoutes,
	})
	if err != nil {
		return cfg, err
	}

	engine := gotemplate.DefaultEngineOptions()
	if engine.TrimBlocks, err = a.prompter.Confirm(ctx, ConfirmConfig{
		Message: "Trim the newline after template block tags?",
		Default: engine.TrimBlocks,
	}); err != nil {
		return cfg, err
	}
	if engine.LStripBlocks, err = a.prompter.Confirm(ctx, ConfirmConfig{
		Message: "Strip indentation before template block tags?",
		Default: engine.LStripBlocks,
	}); err != nil {
		return cfg, err
	}
	pretty, err := a.prompter.Confirm(ctx, ConfirmConfig{
		Message: "Pretty-print rendered HTML?",
		Default: true,
	})
	if err != nil {
		return cfg, err
	}

	cfg.Context = map[string]any{}
	if list := splitList(css); len(list) > 0 {
		cfg.Context[render.KeyCSSFiles] = list
	}
	if list := splitList(js); len(list) > 0 {
		// js_files replaces the default list, so keep the runtime first
		cfg.Context[render.KeyJSFiles] = append([]string{grits.RuntimeScript}, list...)
	}
	if list := splitList(routes); len(list) > 0 {
		cfg.Context["dynamic_routes"] = list
	}
	if len(cfg.Context) == 0 {
		cfg.Context = nil
	}
	cfg.Engine = &engine
	if !pretty {
		cfg.Pretty = &pretty
	}
	return cfg, nil
}

func validateRoutes(value string) error {
	for _, route := range splitList(value) {
		if !strings.HasPrefix(route, "/") {
			return fmt.Errorf("route %q must start with /", route)
		}
	}
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
