package platform

import (
	"context"
	"fmt"

	"github.com/cuebook/cuebook/pkg/adapters/fs"
	"github.com/cuebook/cuebook/pkg/adapters/memory"
	"github.com/cuebook/cuebook/pkg/adapters/redis"
	"github.com/cuebook/cuebook/pkg/core"
)

// New assembles a repository on top of a configured store. The URI is
// adapter-specific: a directory path for "fs", a connection string for
// "redis", ignored for "memory".
func New(uri string, opts ...Option) (*core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := initStore(uri, o)
	if err != nil {
		return nil, err
	}

	repoOpts := []core.Option{core.WithLogger(o.logger)}
	if size, ok := o.config["event_buffer"].(int); ok {
		repoOpts = append(repoOpts, core.WithEventBuffer(size))
	}
	if serialized, ok := o.config["serialized_writes"].(bool); ok {
		repoOpts = append(repoOpts, core.WithSerializedWrites(serialized))
	}
	return core.NewRepository(store, repoOpts...), nil
}

func initStore(uri string, o *options) (core.Store, error) {
	if o.store != nil {
		return o.store, nil
	}

	switch o.adapter {
	case "fs":
		return initFS(uri, o)
	case "memory":
		return memory.NewStore(), nil
	case "redis":
		return redis.NewStore(uri)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

func initFS(path string, o *options) (core.Store, error) {
	systemDir, _ := o.config["system_dir"].(string)
	readOnly, _ := o.config["read_only"].(bool)

	store := fs.NewStore(fs.Config{
		Path:      path,
		SystemDir: systemDir,
		ReadOnly:  readOnly,
		Logger:    o.logger,
	})
	if !readOnly {
		if err := store.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}
	return store, nil
}
