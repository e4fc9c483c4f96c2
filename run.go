package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	"keydeck/activation"
	"keydeck/beep"
	"keydeck/catalog"
	"keydeck/config"
	"keydeck/device"
	"keydeck/dispatch"
	"keydeck/executor"
	"keydeck/hotkey"
	"keydeck/log"
	"keydeck/shutdown"
	"keydeck/togglekey"
)

func run() {
	configPath := flag.String("config", "", "path to keydeck.toml")
	logPath := flag.String("logpath", "", "log directory (overrides config and env)")
	dryRun := flag.Bool("dryrun", false, "record input instead of injecting it")
	noSound := flag.Bool("nosound", false, "disable feedback tones")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("keydeck %s\n", version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logDirFlag := *logPath
	if logDirFlag == "" {
		logDirFlag = cfg.Logging.Path
	}
	dir, err := log.ResolveDir(logDirFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolving log dir: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(dir)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "initializing logs: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	if *noSound {
		beep.Disable()
	}
	beep.Init()

	if cfg.Catalog.Path == "" {
		fmt.Fprintln(os.Stderr, "no catalog path configured (set catalog.path or KEYDECK_CATALOG_PATH)")
		os.Exit(1)
	}
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()
	if cfg.Catalog.Watch {
		if err := cat.Watch(); err != nil {
			log.Warnf("catalog watch disabled: %v", err)
		}
	}

	var backend device.Backend = device.NewSystem()
	if *dryRun {
		backend = device.NewFake()
		log.Info("dry run: input injection disabled")
	}

	ex := executor.New(backend, cfg.PressDuration())
	disp := dispatch.New(cat, activation.NewRegistry(), ex, cfg.DelayedPressFallback())

	stop := make(chan struct{})
	var wg sync.WaitGroup

	registered := 0
	for _, btn := range cfg.Buttons {
		combo, err := hotkey.ParseCombo(btn.Combo)
		if err != nil {
			log.Warnf("button %s: %v", btn.Action, err)
			continue
		}
		hk := hotkey.New(combo)
		if err := hk.Register(); err != nil {
			log.Warnf("button %s: register %s: %v", btn.Action, btn.Combo, err)
			continue
		}
		wg.Add(1)
		go func(hk hotkey.Hotkey, action string) {
			defer wg.Done()
			listenButton(hk, action, disp, stop)
		}(hk, btn.Action)
		registered++
	}

	if cfg.ToggleButton.Combo != "" {
		combo, err := hotkey.ParseCombo(cfg.ToggleButton.Combo)
		if err != nil {
			log.Warnf("toggle button: %v", err)
		} else {
			hk := hotkey.New(combo)
			if err := hk.Register(); err != nil {
				log.Warnf("toggle button: register %s: %v", cfg.ToggleButton.Combo, err)
			} else {
				core := togglekey.New(cfg.ToggleHoldThreshold())
				wg.Add(1)
				go func() {
					defer wg.Done()
					runToggleButton(hk, core, disp, cfg.ToggleButton.Action, stop)
				}()
				registered++
			}
		}
	}

	if registered == 0 {
		log.Warn("no buttons registered; nothing to do")
	}
	log.Infof("keydeck %s running with %d buttons, %d catalog actions", version, registered, len(cat.All()))

	done := make(chan struct{})
	shutdown.OnSignal(func() { close(done) })
	<-done

	log.Info("shutting down")
	close(stop)
	wg.Wait()
	disp.Wait()
	ex.Shutdown()
}

// listenButton feeds one hotkey's press/release stream into the dispatcher.
func listenButton(hk hotkey.Hotkey, action string, disp *dispatch.Dispatcher, stop <-chan struct{}) {
	defer hk.Unregister()
	for {
		select {
		case <-stop:
			return
		case <-hk.Keydown():
			disp.HandleKeyEvent(action, true)
		case <-hk.Keyup():
			disp.HandleKeyEvent(action, false)
		}
	}
}
