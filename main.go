package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/logrusorgru/aurora"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/swifi/swifi-go/swifi"
)

var (
	showList = kingpin.Flag("list", "List available servers sorted by distance").Short('l').Bool()
	serverID = kingpin.Flag("server", "Specify a server id to use").Short('s').String()
	down     = kingpin.Flag("down", "Perform a download speed test").Short('d').Bool()
	up       = kingpin.Flag("up", "Perform an upload speed test").Short('u').Bool()
	jsonOut  = kingpin.Flag("json", "Emit the result as JSON").Short('j').Bool()
)

func main() {
	kingpin.Version("1.0.0")
	kingpin.Parse()

	cfg := swifi.NewConfig(*showList, *serverID, *down, *up, *jsonOut)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	client := swifi.New(swifi.WithLogger(logger))
	ctx := context.Background()

	tm := InitTaskManager(!cfg.JSON)

	tm.Run("Retrieving speedtest.net configuration", func(task *Task) {
		user, err := client.FetchUserInfo(ctx)
		if err != nil {
			task.Println("Warning: cannot fetch caller information, speedtest-config.php is temporarily unavailable")
			return
		}
		task.Printf("Source: %s", user.String())
		task.Complete()
	})

	if cfg.ListOnly {
		var servers swifi.Servers
		tm.Run("Retrieving server list", func(task *Task) {
			var err error
			servers, err = client.TopNearest(ctx)
			task.CheckError(err)
			task.Complete()
		})
		tm.Stop()
		fmt.Print(servers.FormatTable())
		return
	}
	tm.Stop()

	orchestrator := swifi.NewOrchestrator(client, swifi.NewHTTPEngine(nil), logger)
	sink := newMarkerSink(os.Stdout, logger, cfg.JSON)

	result, err := orchestrator.Execute(ctx, cfg, sink)
	sink.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}

	if cfg.JSON {
		doc, err := client.JSON(result)
		if err != nil {
			fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("Error: %v", err)))
			os.Exit(1)
		}
		fmt.Println(string(doc))
		return
	}

	showResult(result)
}

func showResult(result *swifi.Result) {
	fmt.Printf(" \n")
	fmt.Printf("%-13s : %s\n", "Server", aurora.Magenta(result.Server.String()))
	if result.Download != nil {
		fmt.Printf("%-13s : %s\n", "Download", aurora.Gray(24, fmt.Sprintf("%.2f Mbps", result.Download.Mbps)))
	}
	if result.Upload != nil {
		fmt.Printf("%-13s : %s\n", "Upload", aurora.Gray(24, fmt.Sprintf("%.2f Mbps", result.Upload.Mbps)))
	}
}

// markerSink prints one marker per progress notification. Write failures are
// logged and discarded; a failing terminal must not fail the measurement.
type markerSink struct {
	w      io.Writer
	logger *slog.Logger
	quiet  bool

	mu    sync.Mutex
	dirty bool
}

func newMarkerSink(w io.Writer, logger *slog.Logger, quiet bool) *markerSink {
	return &markerSink{w: w, logger: logger, quiet: quiet}
}

func (m *markerSink) Notify() {
	if m.quiet {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := fmt.Fprint(m.w, "#"); err != nil {
		m.logger.Debug("progress marker write failed", "error", err)
		return
	}
	m.dirty = true
}

// Close terminates the marker stream with a newline so following output
// starts on its own line.
func (m *markerSink) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirty {
		fmt.Fprintln(m.w)
		m.dirty = false
	}
}
