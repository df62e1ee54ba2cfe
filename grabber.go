package vidgrab

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/vidgrab/vidgrab/internal/journal"
	"github.com/vidgrab/vidgrab/media"
	"github.com/vidgrab/vidgrab/util"
)

type Config struct {
	// Sink receives the resolved URL or payload. Required.
	Sink Sink
	// Registry supplies the strategy chain; DefaultStrategyRegistry if nil.
	Registry *StrategyRegistry
	// Events receives lifecycle notifications; nothing is published if nil.
	Events EventSender
	// Journal records completed invocations; journal.Nil if nil.
	Journal journal.Store
	// Filenames generates default target filenames.
	Filenames *FilenameConfig
}

type Options struct {
	// Filename overrides the generated default target filename.
	Filename string
}

// A Grabber runs the strategy chain against media elements. Concurrent Grab
// calls for different elements are independent: each owns a fresh chain and
// its own request state.
type Grabber struct {
	config Config
}

func New(config Config) (*Grabber, error) {
	if config.Sink == nil {
		return nil, fmt.Errorf("%w: sink is required", ErrInvalidConfig)
	}
	if config.Registry == nil {
		config.Registry = &DefaultStrategyRegistry
	}
	if config.Journal == nil {
		config.Journal = journal.Nil{}
	}
	if config.Filenames == nil {
		config.Filenames = NewFilenameConfig()
	}
	return &Grabber{config: config}, nil
}

// Grab runs the strategy chain against the element, stopping at the first
// strategy that initiates a download. Per-strategy faults are recovered
// locally: logged, published, and the chain continues. Only input validation
// failure and total exhaustion are surfaced to the caller.
func (g *Grabber) Grab(ctx context.Context, element *media.Element, options Options) error {
	log := Logger(ctx).Sugar().Named("grab")
	if !element.IsValid() {
		log.Warn("refusing to grab: input is not a media element")
		return ErrNotMediaElement
	}

	filename := options.Filename
	if filename == "" {
		filename = filenameFromSource(element)
	}
	if filename == "" {
		var err error
		if filename, err = g.config.Filenames.Generate(time.Now()); err != nil {
			return fmt.Errorf("failed to generate filename: %w", err)
		}
	}

	req := &Request{
		Element:  element,
		Filename: filename,
		id:       NewID(),
		sink:     g.config.Sink,
		events:   g.config.Events,
	}
	log = log.With("grab_id", req.id, "filename", filename)
	state := GrabState{ID: req.id, Filename: filename, Status: StatusNew}

	req.publish(Started{req.base()})
	g.update(req, &state, func(s *GrabState) { s.Status = StatusRunning })

	var faults error
	for _, strategy := range g.config.Registry.NewChain() {
		if !strategy.IsApplicable(element) {
			log.Debugf("%s: not applicable", strategy.Name())
			continue
		}
		req.strategy = strategy.Name()
		g.update(req, &state, func(s *GrabState) { s.Strategy = strategy.Name() })

		err := strategy.Attempt(ctx, req)
		switch OutcomeOf(err) {
		case OutcomeInitiated:
			g.update(req, &state, func(s *GrabState) { s.Status = StatusComplete })
			req.publish(Succeeded{req.base(), strategy.Name()})
			g.record(log, req, OutcomeInitiated, strategy.Name(), nil)
			log.Infof("download initiated via %s", strategy.Name())
			return nil
		case OutcomeSkipped:
			log.Debugf("%s: nothing to try", strategy.Name())
		case OutcomeFault:
			// A single strategy's failure never aborts the chain
			log.Warnf("%s failed: %v", strategy.Name(), err)
			req.publish(StrategyFaulted{req.base(), strategy.Name(), err})
			faults = multierror.Append(faults, multierror.Prefix(err, fmt.Sprintf("[%s]", strategy.Name())))
			g.update(req, &state, func(s *GrabState) { s.Faults++ })
		}
	}

	g.update(req, &state, func(s *GrabState) { s.Status = StatusFailed })
	// A run where every strategy simply had nothing to try is exhaustion
	// without malfunction, and the journal distinguishes the two
	err := error(ErrAllStrategiesExhausted)
	outcome := OutcomeSkipped
	if faults != nil {
		err = fmt.Errorf("%w: %v", ErrAllStrategiesExhausted, faults)
		outcome = OutcomeFault
	}
	req.publish(Failed{req.base(), err})
	g.record(log, req, outcome, "", err)
	log.Warnf("grab failed: %v", err)
	return err
}

// filenameFromSource derives a filename from the element's own source URL,
// when it has one that carries a recognisable media filename.
func filenameFromSource(element *media.Element) string {
	if parsed, ok := media.WebURL(element.Src); ok {
		if filename, err := util.FilenameFromURL(parsed); err == nil && util.HasMediaExtension(filename) {
			return filename
		}
	}
	return ""
}

func (g *Grabber) update(req *Request, state *GrabState, f func(*GrabState)) {
	old := *state
	f(state)
	if *state != old {
		req.publish(Updated{req.base(), old, *state})
	}
}

// record appends to the journal; journal errors never fail the grab.
func (g *Grabber) record(log *zap.SugaredLogger, req *Request, outcome Outcome, strategy string, grabErr error) {
	record := &journal.Record{
		ID:       string(req.id),
		Filename: req.Filename,
		Strategy: strategy,
		Outcome:  string(outcome),
	}
	if page := req.Element.Page; page != nil && page.URL != nil {
		record.PageURL = page.URL.String()
	}
	if grabErr != nil {
		record.Error = grabErr.Error()
	}
	if err := g.config.Journal.Append(record); err != nil {
		log.Warnf("failed to journal grab: %v", err)
	}
}
