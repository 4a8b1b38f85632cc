package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"hotel-availability/internal/availability"
	"hotel-availability/internal/parse"
)

// Engine answers availability and search queries.
type Engine interface {
	Availability(ctx context.Context, commands []availability.Command) ([]availability.Result, error)
	Search(ctx context.Context, req availability.SearchRequest) ([]availability.Result, error)
}

// Console reads commands line by line and prints one answer line per command line.
type Console struct {
	engine Engine
	now    func() time.Time
	logger *slog.Logger
}

// New creates a console. now supplies the reference date of searches.
func New(engine Engine, now func() time.Time, logger *slog.Logger) *Console {
	return &Console{engine: engine, now: now, logger: logger}
}

// Run processes lines from in until EOF or a blank line. Lines that are neither
// Availability nor Search commands are ignored.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		answer, ok, err := c.Handle(ctx, line)
		if err != nil {
			return err
		}
		if ok {
			if _, err := fmt.Fprintln(out, answer); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}

// Handle answers a single line. ok is false when the line is not a command. Errors are
// reserved for lookup failures; malformed commands produce an error message as the answer,
// followed by an empty result line for Availability commands.
func (c *Console) Handle(ctx context.Context, line string) (answer string, ok bool, err error) {
	switch parse.Kind(line) {
	case parse.KindAvailability:
		commands, perr := parse.AvailabilityLine(line)
		if perr != nil {
			// A rejected line still answers with its (empty) result line.
			return message(perr) + "\n" + formatAvailability(nil), true, nil
		}
		results, err := c.engine.Availability(ctx, commands)
		if err != nil {
			return "", false, err
		}
		return formatAvailability(results), true, nil

	case parse.KindSearch:
		cmd, perr := parse.SearchLine(line)
		if perr != nil {
			return message(perr), true, nil
		}
		results, err := c.engine.Search(ctx, availability.SearchRequest{
			HotelID:   cmd.HotelID,
			RoomType:  cmd.RoomType,
			DaysAhead: cmd.DaysAhead,
			Today:     availability.Day(c.now()),
		})
		if err != nil {
			return "", false, err
		}
		return formatSearch(results), true, nil

	default:
		c.logger.Debug("ignoring unknown command", "line", line)
		return "", false, nil
	}
}

func message(err error) string {
	switch {
	case errors.Is(err, parse.ErrInvalidDate):
		return "Invalid date format."
	case errors.Is(err, parse.ErrInvalidDays):
		return "Invalid number of days."
	default:
		return "Invalid command format."
	}
}

// formatAvailability renders "(20240901,2), (20240901-20240903,1)".
func formatAvailability(results []availability.Result) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("(%s,%d)", r.Range, r.Count)
	}
	return strings.Join(parts, ", ")
}

// formatSearch always prints both ends of each range.
func formatSearch(results []availability.Result) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("(%s-%s,%d)",
			r.Range.Start.Format(availability.DateLayout),
			r.Range.End.Format(availability.DateLayout),
			r.Count)
	}
	return strings.Join(parts, ", ")
}
