// cmd/aligner/main.go
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/tamzrod/flux-aligner/internal/config"
	"github.com/tamzrod/flux-aligner/internal/engine"
	"github.com/tamzrod/flux-aligner/internal/metrics"
	"github.com/tamzrod/flux-aligner/internal/poller"
	"github.com/tamzrod/flux-aligner/internal/status"
	"github.com/tamzrod/flux-aligner/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: aligner <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	metrics.Serve(cfg.Aligner.Metrics.Listen)

	ctx := context.Background()

	// --------------------
	// Build per-unit pipelines
	// --------------------

	for _, unit := range cfg.Aligner.Units {

		// ---- flux sampler ----
		s, closeSampler, err := poller.Build(unit)
		if err != nil {
			log.Fatalf("sampler build failed (unit=%s): %v", unit.ID, err)
		}
		defer closeSampler()

		// ---- write plan ----
		plan, err := writer.BuildPlan(unit, cfg.Aligner.StatusMemory.Endpoint)
		if err != nil {
			log.Fatalf("write plan failed (unit=%s): %v", unit.ID, err)
		}

		// ---- writer clients (RESULT + STATUS) ----
		clients, closeWriters, err := writer.BuildEndpointClients(
			unit,
			cfg.Aligner.StatusMemory.Endpoint,
		)
		if err != nil {
			log.Fatalf("writer clients failed (unit=%s): %v", unit.ID, err)
		}
		defer closeWriters()

		resultWriter := writer.New(plan, clients)

		// Status writer (optional per unit)
		statusWriter, statusEnabled := writer.NewEngineStatusWriter(plan, clients)

		// ---- channel between sampler and writer ----
		out := make(chan poller.Sample)

		// Orchestrator (runner-owned state + 1Hz seconds ticker)
		go runUnit(ctx, unit.ID, out, resultWriter, statusWriter, statusEnabled)

		// sampler producer
		go s.Run(ctx, out)
	}

	// --------------------
	// Block forever (daemon-safe, no deadlock)
	// --------------------
	for {
		time.Sleep(time.Hour)
	}
}

// runUnit owns all mutable per-unit state: the status snapshot, the
// alignment counter and the sample sequence.
func runUnit(
	ctx context.Context,
	unitID string,
	in <-chan poller.Sample,
	resultWriter writer.Writer,
	statusWriter writer.StatusWriter,
	statusEnabled bool,
) {
	var snap status.Snapshot
	var sequence uint16

	snap.Health = status.HealthUnknown

	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	// Full block write on start (identity re-assert) if enabled.
	if statusEnabled {
		if err := statusWriter.WriteStatus(snap); err != nil {
			log.Printf("status write failed on start (unit=%s): %v", unitID, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case sample := <-in:
			res, next := align(sample, sequence)
			sequence++

			// --- result delivery ---
			if err := resultWriter.Write(res); err != nil {
				log.Printf("writer error (unit=%s): %v", unitID, err)
			}

			// --- status update (unit-level truth) ---
			if !statusEnabled {
				continue
			}

			next.Alignments = snap.Alignments
			if res.ErrorCode == status.ErrorNone {
				next.Alignments++
			}

			// Seconds-in-error belongs to the 1Hz ticker; a sample
			// only clears it on recovery.
			if next.Health != status.HealthAligned {
				next.SecondsInError = snap.SecondsInError
			}

			if next != snap {
				snap = next
				if err := statusWriter.WriteStatus(snap); err != nil {
					log.Printf("status write failed (unit=%s): %v", unitID, err)
				}
			}

		case <-secTicker.C:
			if !statusEnabled {
				continue
			}

			// Tick 1 Hz while not healthy.
			if snap.Health != status.HealthAligned {
				if snap.SecondsInError < 65535 {
					snap.SecondsInError++
					if err := statusWriter.WriteStatus(snap); err != nil {
						log.Printf("status seconds tick write failed (unit=%s): %v", unitID, err)
					}
				}
			}
		}
	}
}

// align runs the pipeline on one sample and folds the outcome into a
// result block plus the next status snapshot. The snapshot's Alignments
// counter is left for the caller to carry forward.
func align(sample poller.Sample, sequence uint16) (status.Result, status.Snapshot) {
	metrics.SamplesTotal.Inc()

	res := status.Result{Sequence: sequence}
	next := status.Snapshot{}

	if sample.Err != nil {
		metrics.SampleErrorsTotal.Inc()
		metrics.DecoherenceTotal.Inc()

		res.ErrorCode = status.ErrorTransport
		next.Health = status.HealthDecoherent
		next.LastErrorCode = status.ErrorTransport
		return res, next
	}

	started := time.Now()
	rep, err := engine.Run(sample.Flux)
	metrics.AlignmentDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		metrics.DecoherenceTotal.Inc()

		res.ErrorCode = errorCode(err)
		next.Health = status.HealthDecoherent
		next.LastErrorCode = res.ErrorCode
		return res, next
	}

	res.ZeroPoint = rep.ZeroUnit
	res.Nucleus = rep.Nucleus

	if rep.ZeroUnit {
		metrics.AlignmentsTotal.Inc()
		next.Health = status.HealthAligned
	} else {
		metrics.DecoherenceTotal.Inc()
		next.Health = status.HealthDecoherent
	}
	next.Nucleus = uint16(rep.Nucleus)

	return res, next
}

// errorCode maps engine failures onto status register codes.
func errorCode(err error) uint16 {
	switch {
	case err == nil:
		return status.ErrorNone
	case errors.Is(err, engine.ErrInvalidInput):
		return status.ErrorInvalidInput
	case errors.Is(err, engine.ErrOverflow):
		return status.ErrorOverflow
	default:
		return status.ErrorTransport
	}
}
