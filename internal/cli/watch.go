package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ai-style-review-be/internal/pkg/logger"
	"ai-style-review-be/pkg/events"
	"ai-style-review-be/pkg/nats"
)

type watchOptions struct {
	URL     string
	Types   []string
	Durable string
}

func newWatchCmd(root *RootOptions) *cobra.Command {
	opts := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Tail suggestion analytics events from NATS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.URL == "" {
				cfg := loadConfig()
				opts.URL = cfg.App.NatsURL
			}
			if opts.URL == "" {
				return errors.New("no NATS url: pass --url or set NATS_URL")
			}
			return runWatch(cmd.Context(), cmd.OutOrStdout(), root.logger(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.URL, "url", "", "NATS server url (default NATS_URL)")
	cmd.Flags().StringSliceVar(&opts.Types, "types",
		[]string{events.TypeSuggestionResolved, events.TypeSuggestionAccepted}, "Event types to follow")
	cmd.Flags().StringVar(&opts.Durable, "durable", "", "Durable consumer name; empty follows new events only")
	return cmd
}

func runWatch(ctx context.Context, w io.Writer, log logger.ILogger, opts *watchOptions) error {
	sub, err := nats.NewSubscriber(opts.URL, log)
	if err != nil {
		return err
	}
	defer sub.Close()

	var mu sync.Mutex
	handler := func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		printEvent(w, e)
		return nil
	}
	for _, t := range opts.Types {
		durable := opts.Durable
		if durable != "" {
			durable += "-" + strings.ToLower(t)
		}
		if err := sub.Subscribe(ctx, t, durable, handler); err != nil {
			return err
		}
	}
	<-ctx.Done()
	return nil
}

var eventColor = color.New(color.FgMagenta, color.Bold)

func printEvent(w io.Writer, e events.Event) {
	fmt.Fprintf(w, "%s ", e.Timestamp().Format("15:04:05"))
	eventColor.Fprint(w, e.EventType())
	data := e.Payload()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, " %s=%v", k, data[k])
	}
	fmt.Fprintln(w)
}
