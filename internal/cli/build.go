package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/goliatone/go-grits"
	"github.com/goliatone/go-grits/pkg/config"
	"github.com/goliatone/go-grits/pkg/render"
)

type buildFlags struct {
	src        string
	dst        string
	templates  string
	configPath string
	css        stringList
	js         stringList
	noPretty   bool
	log        logFlags
}

func (a *App) runBuild(ctx context.Context, args []string) error {
	var f buildFlags
	fs := a.newFlagSet("build", "build --src DIR --dst DIR [options]")
	fs.StringVar(&f.src, "src", "", "Source directory (required).")
	fs.StringVar(&f.dst, "dst", "", "Output directory (required).")
	fs.StringVar(&f.templates, "templates", "", "Directory of templates overriding the built-in layouts.")
	fs.StringVar(&f.configPath, "config", "", "Build config file. Defaults to grits.yaml, grits.yml or grits.json in --src.")
	fs.Var(&f.css, "css", "Additional css file; may be repeated.")
	fs.Var(&f.js, "js", "Additional js file; may be repeated.")
	fs.BoolVar(&f.noPretty, "no-pretty", false, "Write .html renders without pretty-printing.")
	f.log.register(fs)

	if done, err := parse(fs, args); done || err != nil {
		return err
	}
	if f.src == "" || f.dst == "" {
		fs.Usage()
		return usageError("build: --src and --dst are required")
	}

	logger, err := f.log.logger(a.errOut)
	if err != nil {
		return err
	}

	cfg, cfgPath, err := loadConfig(f.configPath, f.src)
	if err != nil {
		return err
	}
	if cfgPath != "" {
		logger.Debug("loaded config", "path", cfgPath)
	}

	store := grits.DefaultStore()
	view, err := grits.UserContext(store)
	if err != nil {
		return err
	}
	view.Update(cfg.Context)
	snap := view.Snapshot()
	view.Set(render.KeyCSSFiles, append(snap.Strings(render.KeyCSSFiles), f.css...))
	view.Set(render.KeyJSFiles, append(snap.Strings(render.KeyJSFiles), f.js...))

	templates := cfg.Templates
	if f.templates != "" {
		templates = f.templates
	}

	stats, err := grits.Build(ctx, grits.BuildConfig{
		SourceDir:      f.src,
		OutputDir:      f.dst,
		TemplateDir:    templates,
		Store:          store,
		Engine:         cfg.Engine,
		BinarySuffixes: cfg.BinarySuffixes,
		DisablePretty:  f.noPretty || !cfg.PrettyEnabled(),
		Ignore:         ignoredConfigNames(f.src, cfgPath),
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "built %d files into %s (%d pages, %d assets, %d binaries, %d scaffolding)\n",
		stats.Files(), f.dst, stats.Pages, stats.Assets, stats.Binaries, stats.Scaffolding)
	return nil
}

// loadConfig reads the explicit config file, or the one found in src.
func loadConfig(explicit, src string) (config.Config, string, error) {
	path := explicit
	if path == "" {
		found, ok := config.Find(src)
		if !ok {
			return config.Config{}, "", nil
		}
		path = found
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

// ignoredConfigNames keeps config files in the source tree out of the build.
func ignoredConfigNames(src, cfgPath string) []string {
	names := append([]string(nil), config.FileNames...)
	if cfgPath == "" {
		return names
	}
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return names
	}
	absCfg, err := filepath.Abs(cfgPath)
	if err != nil {
		return names
	}
	if rel, err := filepath.Rel(absSrc, absCfg); err == nil && filepath.IsLocal(rel) {
		names = append(names, filepath.ToSlash(rel))
	}
	return names
}
