package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/gcinput/internal/adapter"
	"github.com/soar/gcinput/internal/config"
	"github.com/soar/gcinput/internal/hub"
	"github.com/soar/gcinput/internal/n64"
	"github.com/soar/gcinput/internal/server"
	"github.com/soar/gcinput/internal/tray"
)

// Cross-platform signal handling: os.Interrupt covers Ctrl+C on Windows and
// SIGINT on Unix.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	pflag.String("addr", ":8080", "viewer listen address")
	pflag.String("config", config.DefaultPath(), "controller configuration file")
	pflag.Int("channel", 0, "adapter port to follow (0-3)")
	pflag.Bool("print", false, "print active inputs to the console instead of serving the viewer")
	pflag.Duration("print-for", 10*time.Second, "how long to poll in print mode")
	pflag.Parse()

	// Tool settings may also come from gcinput.toml or GCINPUT_* environment
	// variables; flags win.
	viper.SetConfigName("gcinput")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	if base, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(base, "gcinput"))
	}
	viper.SetEnvPrefix("gcinput")
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		log.Fatalf("Binding flags: %v", err)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("Reading settings: %v", err)
		}
	}

	cfg := config.LoadOrCreate(viper.GetString("config"))

	a, err := adapter.Open()
	if err != nil {
		log.Fatalf("Could not connect to GameCube adapter: %v", err)
	}
	defer a.Close()
	log.Printf("Connected to %s", a)

	if viper.GetBool("print") {
		if err := runPrint(a, viper.GetDuration("print-for")); err != nil {
			log.Fatal(err)
		}
		return
	}

	runViewer(a, cfg, viper.GetString("addr"), viper.GetInt("channel"))
}

// runPrint polls the adapter for the given duration and prints every active
// controller sample, one line per change of activity.
func runPrint(a *adapter.Adapter, d time.Duration) error {
	state, err := a.Read()
	if err != nil {
		return err
	}
	if !state.AnyConnected() {
		log.Println("No controllers connected, but hotplugging is supported")
	}

	deadline := time.Now().Add(d)
	anyInput := false

	for time.Now().Before(deadline) {
		state, err := a.Read()
		if err != nil {
			return err
		}
		for ch := adapter.Channel(0); ch < adapter.NumChannels; ch++ {
			c := state.Controller(ch)
			if c.Connected && c.Any() {
				anyInput = true
				fmt.Printf("Channel %d: %+v\n", ch, c)
			}
		}
		time.Sleep(time.Millisecond)
	}

	if !anyInput {
		return errors.New("no input received; press the input(s) you want to test")
	}
	return nil
}

func runViewer(a *adapter.Adapter, cfg config.Config, addr string, channel int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	poller := adapter.NewPoller(a)
	if !poller.SetActiveChannel(channel) {
		log.Printf("Invalid channel %d, following port 1", channel)
	}

	// Remap the raw samples into N64 state for the broadcast path.
	remapper := n64.NewRemapper(cfg)
	states := make(chan n64.State, 64)
	go func() {
		defer close(states)
		for c := range poller.Changes() {
			states <- remapper.State(c)
		}
	}()

	h := hub.NewHub()
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, states)
	go broadcaster.Run()

	srv := server.New(h, broadcaster, poller, frontendPage, addr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	log.Printf("gcinput viewer started: %s", viewerURL(addr))

	shutdownRequested := make(chan struct{})
	if runtime.GOOS == "windows" {
		go func() {
			t := tray.New(viewerURL(addr), func() {
				close(shutdownRequested)
			})
			t.Run()
		}()
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	pollerDone := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(pollerDone)
	}()

	select {
	case <-sigCh:
		log.Println("Shutting down...")
		cancel()
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
		cancel()
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
		cancel()
	}

	<-pollerDone

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("gcinput stopped")
}

func viewerURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
