package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/crimemap/backend/internal/domain"
	"github.com/crimemap/backend/internal/hotspot"
	"github.com/crimemap/backend/internal/repository/file"
	"github.com/crimemap/backend/internal/repository/fixtures"
	"github.com/crimemap/backend/internal/service"
)

type eventScript struct {
	Events []domain.Event `yaml:"events"`
}

func newReplayCmd() *cobra.Command {
	var recordsPath, eventsPath string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Apply a scripted event sequence and print the final frame as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(recordsPath, eventsPath, cfg.Home(), cfg.DefaultZoom, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&recordsPath, "records", "", "YAML or JSON records file (defaults to built-in fixtures)")
	cmd.Flags().StringVar(&eventsPath, "events", "", "YAML file with an events list")
	_ = cmd.MarkFlagRequired("events")
	return cmd
}

func loadEvents(path string) ([]domain.Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "replay: failed to read %s", path)
	}
	var script eventScript
	if err := yaml.Unmarshal(raw, &script); err != nil {
		return nil, eris.Wrapf(err, "replay: failed to decode %s", path)
	}
	return script.Events, nil
}

// runReplay mounts a session on the records, dispatches every scripted
// event in order and writes the resulting frame to w
func runReplay(recordsPath, eventsPath string, home domain.LatLng, zoom int, w io.Writer) error {
	inputs := fixtures.Records()
	if recordsPath != "" {
		loaded, err := file.Load(recordsPath)
		if err != nil {
			return err
		}
		inputs = loaded
	}

	events, err := loadEvents(eventsPath)
	if err != nil {
		return err
	}

	now := time.Now()
	snap, diag := hotspot.Ingest(inputs, 1, now)
	logDiagnostics(diag)

	sess := service.NewSession("replay", snap, service.NewFrameViewport(), home, zoom, now)
	frame := sess.Frame()
	for i, ev := range events {
		if frame, err = sess.Dispatch(ev, now); err != nil {
			return eris.Wrapf(err, "replay: event %d", i)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(frame)
}
