// Command mcinstall drives a single installation from the command line:
// resolve a version/modloader combination and fetch everything the
// launcher needs, reporting progress as it goes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/quasar/mc-installer/internal/config"
	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/facade"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/model"
)

func main() {
	var (
		mcVersion = flag.String("version", "", "Minecraft version id, e.g. 1.20.4 (required)")
		loaderStr = flag.String("loader", "vanilla", "mod loader: vanilla, fabric, forge, or optifine")
		loaderVer = flag.String("loader-version", "", "loader version (defaults to the first listed for the chosen loader)")
		root      = flag.String("root", "", "game directory (defaults to the OS-standard .minecraft location)")
		tempPath  = flag.String("temp", "", "scratch directory for loader installer jars (required for fabric/forge/optifine)")
		javaPath  = flag.String("java", "", "java executable used to run loader installer jars")
		manifest  = flag.String("manifest", "", "path to a JSON install manifest; overrides the other flags when set")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mcinstall: loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sink := events.Func(func(ev events.Event) {
		fmt.Fprintln(os.Stderr, ev.String())
	})

	opts := facade.Options{
		Root:            *root,
		TempPath:        *tempPath,
		JavaPath:        *javaPath,
		DownloadWorkers: cfg.DownloadWorkers,
	}

	var runErr error
	if *manifest != "" {
		raw, err := os.ReadFile(*manifest)
		if err != nil {
			fmt.Fprintf(os.Stderr, "mcinstall: reading manifest: %v\n", err)
			os.Exit(1)
		}
		runErr = facade.InstallFromJSON(ctx, raw, opts, sink)
	} else {
		if *mcVersion == "" {
			fmt.Fprintln(os.Stderr, "mcinstall: -version is required (or pass -manifest)")
			flag.Usage()
			os.Exit(2)
		}
		req := model.NewInstallManifest(*mcVersion, model.Loader(*loaderStr))
		req.ModloaderVer = *loaderVer
		runErr = facade.Install(ctx, req, opts, sink)
	}

	if runErr != nil {
		if kind, ok := launcherr.Of(runErr); ok {
			fmt.Fprintf(os.Stderr, "mcinstall: %s: %v\n", kind, runErr)
		} else {
			fmt.Fprintf(os.Stderr, "mcinstall: %v\n", runErr)
		}
		os.Exit(1)
	}

	fmt.Println("install complete")
}
