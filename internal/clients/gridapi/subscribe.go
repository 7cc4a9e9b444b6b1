package gridapi

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/KirkDiggler/rpg-tabletop/internal/entities/grid"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// GridEvent is the server-sent event name carrying a grid snapshot
const GridEvent = "grid"

// maxEventSize bounds a single snapshot; a 200x200 grid descriptor stays
// far below it
const maxEventSize = 4 << 20

func (c *client) Subscribe(ctx context.Context, id string) (<-chan grid.DTO, <-chan error) {
	grids := make(chan grid.DTO)
	errs := make(chan error, 1)

	go func() {
		defer close(grids)
		defer close(errs)

		if err := c.subscribe(ctx, id, grids); err != nil && ctx.Err() == nil {
			errs <- err
		}
	}()

	return grids, errs
}

func (c *client) subscribe(ctx context.Context, id string, out chan<- grid.DTO) error {
	if id == "" {
		return errors.InvalidArgument("grid id is required")
	}

	path := "/api/grid/" + url.PathEscape(id) + "/subscribe"
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		return transportError(ctx, err, http.MethodGet, path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxEventSize))
		return errors.FromBody(resp.StatusCode, data).WithMeta("path", path)
	}

	return readEvents(ctx, resp.Body, func(event, data string) error {
		if event != GridEvent {
			return nil
		}
		var dto grid.DTO
		if err := json.Unmarshal([]byte(data), &dto); err != nil {
			return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode grid event")
		}
		select {
		case out <- dto:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// readEvents parses a text/event-stream body and calls fn once per
// dispatched event. Multi-line data fields are joined with "\n"; events
// without a name are "message".
func readEvents(ctx context.Context, r io.Reader, fn func(event, data string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxEventSize)

	var (
		event string
		data  []string
	)
	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			if len(data) > 0 {
				name := event
				if name == "" {
					name = "message"
				}
				if err := fn(name, strings.Join(data, "\n")); err != nil {
					return err
				}
			}
			event, data = "", nil
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "event":
			event = value
		case "data":
			data = append(data, value)
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.WrapWithCode(err, errors.CodeUnavailable, "grid stream broke")
	}
	return errors.Unavailable("grid stream closed by server")
}
