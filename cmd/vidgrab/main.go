package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/r3labs/diff/v3"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/vidgrab/vidgrab"
	"github.com/vidgrab/vidgrab/async"
	"github.com/vidgrab/vidgrab/generic"
	"github.com/vidgrab/vidgrab/internal/journal"
	"github.com/vidgrab/vidgrab/internal/pubsub"
	"github.com/vidgrab/vidgrab/media"
	"github.com/vidgrab/vidgrab/sink"
	_ "github.com/vidgrab/vidgrab/strategies"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = vidgrab.WithLogger(ctx, logger)

	app := &cli.App{
		Name:  "vidgrab",
		Usage: "download the video embedded in a web page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "target",
				Usage: "save downloaded video to `DIR` (default: autodetect)",
			},
			&cli.IntFlag{
				Name:  "index",
				Value: 0,
				Usage: "which video element on the page to download",
			},
			&cli.StringFlag{
				Name:  "filename",
				Usage: "save as `NAME` instead of a generated filename",
			},
			&cli.StringFlag{
				Name:  "journal",
				Usage: "record grab outcomes in a journal at `PATH`",
			},
		},
		Action: func(c *cli.Context) error {
			opts := options{
				target:      c.String("target"),
				index:       c.Int("index"),
				filename:    c.String("filename"),
				journalPath: c.String("journal"),
			}
			for _, pageURL := range c.Args().Slice() {
				if err := grab(ctx, pageURL, opts); err != nil {
					return err
				}
			}
			return nil
		},
		HideHelpCommand: true,
	}

	result := async.Run(func() error { return app.Run(os.Args) })

	select {
	case err = <-result:
		if err != nil {
			logger.Fatal(err.Error())
		}
	case <-ctx.Done():
		logger.Error(ctx.Err().Error())
		stop()
	}
}

type options struct {
	target      string
	index       int
	filename    string
	journalPath string
}

func grab(ctx context.Context, pageURL string, opts options) error {
	logger := vidgrab.Logger(ctx).Sugar()
	logger.Infof("Fetching page %s", pageURL)

	page, err := fetchPage(ctx, pageURL)
	if err != nil {
		return err
	}
	videos := page.Videos()
	if len(videos) == 0 {
		return fmt.Errorf("no video elements found in %s", pageURL)
	}
	if opts.index < 0 || opts.index >= len(videos) {
		return fmt.Errorf("page has %d video element(s), index %d out of range", len(videos), opts.index)
	}
	element := videos[opts.index]
	logger.Infof("Found %d video element(s), downloading #%d", len(videos), opts.index)

	builder := sink.Detect()
	if opts.target != "" {
		builder = builder.WithTargetDir(opts.target)
	}

	bar := progressbar.DefaultBytes(1, "downloading")
	fileSink, err := builder.
		WithProgress(func(downloaded, expected int) {
			if expected > 0 && bar.GetMax() != expected {
				bar.ChangeMax(expected)
			}
			_ = bar.Set(downloaded)
		}).
		Build()
	if err != nil {
		return err
	}

	config := vidgrab.Config{Sink: fileSink}
	if opts.journalPath != "" {
		db, err := journal.Open(opts.journalPath)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer db.Close()
		config.Journal = db
	}

	events := pubsub.NewPublisher[vidgrab.Event]()
	config.Events = events
	subscriber := generic.Unwrap(events.SubscribeBufSize(64))
	watcher := async.Run(func() generic.Void {
		watchEvents(logger, subscriber)
		return generic.Void{}
	})

	grabber, err := vidgrab.New(config)
	if err != nil {
		return err
	}
	err = grabber.Grab(ctx, element, vidgrab.Options{Filename: opts.filename})
	events.Close()
	<-watcher

	if err != nil {
		if errors.Is(err, vidgrab.ErrAllStrategiesExhausted) {
			logger.Warn("No strategy could download this video; try saving it manually from the browser")
		}
		return err
	}
	logger.Info("Download complete!")
	return nil
}

func watchEvents(logger *zap.SugaredLogger, events pubsub.ReceiverCloser[vidgrab.Event]) {
	for event := range events.Receive() {
		switch e := event.(type) {
		case vidgrab.StrategyFaulted:
			logger.Warnf("%s: %v", e.Strategy, e.Err)
		case vidgrab.ResolvedURL:
			logger.Infof("%s resolved %s", e.Strategy, e.URL)
		case vidgrab.ResolvedBlob:
			logger.Infof("%s produced %d bytes (%s)", e.Strategy, e.Size, e.ContentType)
		case vidgrab.Succeeded:
			logger.Infof("Downloaded %s via %s", e.Filename(), e.Strategy)
		case vidgrab.Updated:
			changes, err := diff.Diff(e.Old, e.New)
			if err != nil {
				logger.Errorf("failed to diff grab state: %v", err)
				continue
			}
			for _, change := range changes {
				logger.Debugf("%v: %#v -> %#v", change.Path, change.From, change.To)
			}
		default:
			logger.Debugf("event: %T", event)
		}
	}
}

// fetchPage loads a page over HTTP, or from a local HTML file for anything
// that isn't a web URL.
func fetchPage(ctx context.Context, pageURL string) (*media.Page, error) {
	if parsed, ok := media.WebURL(pageURL); ok {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("failed to fetch page: %s", resp.Status)
		}
		return media.ParsePage(resp.Body, resp.Request.URL)
	}

	file, err := os.Open(pageURL)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return media.ParsePage(file, nil)
}
