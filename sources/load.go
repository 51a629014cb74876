package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/golang/groupcache/lru"
	"github.com/golang/groupcache/singleflight"
	"github.com/reusee/undotape/logs"
	"github.com/reusee/undotape/nets"
)

const (
	maxRemoteSize = 16 << 20
	maxCached     = 64
)

var ErrNotText = errors.New("not a text source")

type Stdin io.Reader

func (Module) Stdin() Stdin {
	return os.Stdin
}

// Load reads a program: "-" is stdin, http and https urls are fetched, anything else is a file path.
// Loaded sources are cached by location for the lifetime of the scope.
type Load func(ctx context.Context, location string) (*Source, error)

func (Module) Load(
	client nets.HTTPClient,
	stdin Stdin,
	logger logs.Logger,
) Load {

	var (
		mu     sync.Mutex
		cache  = lru.New(maxCached)
		single singleflight.Group
	)

	fetch := func(ctx context.Context, location string) (*Source, error) {
		switch {

		case location == "-":
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, err
			}
			return &Source{
				Name: "<stdin>",
				Data: data,
			}, nil

		case strings.HasPrefix(location, "http://"),
			strings.HasPrefix(location, "https://"):
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
			if err != nil {
				return nil, err
			}
			resp, err := client.Do(req)
			if err != nil {
				return nil, err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("status %s", resp.Status)
			}
			data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
			if err != nil {
				return nil, err
			}
			if len(data) > maxRemoteSize {
				return nil, fmt.Errorf("larger than %d bytes", maxRemoteSize)
			}
			logger.DebugContext(ctx, "fetched program", "url", location, "size", len(data))
			return &Source{
				Name: location,
				Data: data,
			}, nil

		}

		data, err := os.ReadFile(location)
		if err != nil {
			return nil, err
		}
		return &Source{
			Name: location,
			Data: data,
		}, nil
	}

	return func(ctx context.Context, location string) (_ *Source, err error) {
		defer func() {
			if err != nil {
				err = logs.WrapSpan(ctx, fmt.Errorf("load %s: %w", location, err))
			}
		}()

		mu.Lock()
		v, ok := cache.Get(location)
		mu.Unlock()
		if ok {
			return v.(*Source), nil
		}

		v, err = single.Do(location, func() (any, error) {
			source, err := fetch(ctx, location)
			if err != nil {
				return nil, err
			}
			if err := checkText(source.Data); err != nil {
				return nil, err
			}
			mu.Lock()
			cache.Add(location, source)
			mu.Unlock()
			return source, nil
		})
		if err != nil {
			return nil, err
		}
		return v.(*Source), nil
	}
}

func checkText(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	mtype := mimetype.Detect(data)
	for t := mtype; t != nil; t = t.Parent() {
		if t.Is("text/plain") {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotText, mtype.String())
}
