// quillctl exercises the SDK from the command line: it loads configuration,
// initializes a session and runs one content operation, printing the result
// as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/quillfeed/quillfeed/cache"
	"github.com/quillfeed/quillfeed/client"
	"github.com/quillfeed/quillfeed/config"
	"github.com/quillfeed/quillfeed/logging"
	"github.com/quillfeed/quillfeed/metrics"
	"github.com/quillfeed/quillfeed/session"
)

func main() {
	var (
		configFile   = flag.String("config", "", "path to configuration file")
		envPrefix    = flag.String("env-prefix", "QUILLFEED", "environment variable prefix")
		metricsAddr  = flag.String("metrics-listen", "", "optional address to serve Prometheus metrics on")
		page         = flag.Int("page", 1, "page number for list operations")
		limit        = flag.Int("limit", 10, "page size for list operations")
		category     = flag.String("category", "", "category filter for list operations")
		tag          = flag.String("tag", "", "tag filter for list operations")
		forceRefresh = flag.Bool("force-refresh", false, "bypass the response cache")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader(*envPrefix, *configFile)
	cfg, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to configure logger: %v", err)
	}

	recorder := metrics.NewRecorder(nil)
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", recorder.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				logger.Error("metrics listener failed", slog.Any("error", err))
			}
		}()
	}

	store := buildStore(logger, cfg.Cache)

	sess := session.New(cfg, session.Options{
		Client:  client.Options{Cache: store},
		Logger:  logger,
		Metrics: recorder,
	})
	defer func() {
		if err := sess.Close(); err != nil {
			logger.Error("session shutdown failed", slog.Any("error", err))
		}
	}()

	if err := sess.Init(ctx); err != nil {
		logger.Error("session initialization rejected", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	op := flag.Arg(0)
	if op == "" {
		op = "posts"
	}

	var opts []client.RequestOption
	if *forceRefresh {
		opts = append(opts, client.WithForceRefresh())
	}
	listQuery := client.ListQuery{Page: *page, Limit: *limit, Category: *category, Tag: *tag}

	result, err := run(ctx, sess, op, flag.Arg(1), listQuery, opts)
	if err != nil {
		if client.IsCanceled(err) {
			return
		}
		logger.Error("operation failed", slog.String("operation", op), slog.Any("error", err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
}

func run(ctx context.Context, sess *session.Session, op, arg string, q client.ListQuery, opts []client.RequestOption) (any, error) {
	c := sess.Client()
	switch op {
	case "posts":
		return c.ListPosts(ctx, q, opts...)
	case "post":
		if arg == "" {
			return nil, fmt.Errorf("usage: quillctl post <slug>")
		}
		return c.GetPostBySlug(ctx, arg, opts...)
	case "post-id":
		if arg == "" {
			return nil, fmt.Errorf("usage: quillctl post-id <id>")
		}
		return c.GetPostByID(ctx, arg, opts...)
	case "metadata":
		return c.GetMetadata(ctx, opts...)
	case "categories":
		return c.GetCategories(ctx, opts...)
	case "tags":
		return c.GetTags(ctx, opts...)
	case "related":
		if arg == "" {
			return nil, fmt.Errorf("usage: quillctl related <post-id>")
		}
		return c.GetRelatedPosts(ctx, arg, q.Limit, opts...)
	case "search":
		if arg == "" {
			return nil, fmt.Errorf("usage: quillctl search <query>")
		}
		return c.SearchPosts(ctx, client.SearchQuery{Query: arg, Page: q.Page, Limit: q.Limit, Category: q.Category, Tag: q.Tag}, opts...)
	case "recent":
		return c.GetRecentPosts(ctx, q.Limit, opts...)
	case "by-category":
		if arg == "" {
			return nil, fmt.Errorf("usage: quillctl by-category <category>")
		}
		return c.GetPostsByCategory(ctx, arg, q, opts...)
	case "by-tag":
		if arg == "" {
			return nil, fmt.Errorf("usage: quillctl by-tag <tag>")
		}
		return c.GetPostsByTag(ctx, arg, q, opts...)
	case "design":
		return c.GetDesign(ctx, opts...)
	case "effective":
		return sess.Snapshot().Effective, nil
	case "urls":
		return map[string]string{"rss": c.RSSURL(), "sitemap": c.SitemapURL()}, nil
	case "health":
		return map[string]bool{"healthy": c.HealthCheck(ctx)}, nil
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}

// buildStore selects the response cache backend, falling back to memory when
// the shared backend is unreachable.
func buildStore(logger *slog.Logger, cfg config.CacheConfig) cache.Store {
	backend := strings.TrimSpace(strings.ToLower(cfg.Backend))
	switch backend {
	case "", "memory":
		return cache.NewMemory()
	case "valkey":
		store, err := cache.NewValkey(cache.ValkeyConfig{
			Address:   cfg.Valkey.Address,
			Username:  cfg.Valkey.Username,
			Password:  cfg.Valkey.Password,
			DB:        cfg.Valkey.DB,
			Namespace: cfg.Valkey.Namespace,
			TLS: cache.ValkeyTLSConfig{
				Enabled: cfg.Valkey.TLS.Enabled,
				CAFile:  cfg.Valkey.TLS.CAFile,
			},
		})
		if err != nil {
			logger.Error("valkey cache initialization failed", slog.Any("error", err))
			logger.Info("falling back to memory cache")
			return cache.NewMemory()
		}
		logger.Info("using valkey response cache", slog.String("address", cfg.Valkey.Address))
		return store
	default:
		logger.Warn("unsupported cache backend, defaulting to memory", slog.String("backend", cfg.Backend))
		return cache.NewMemory()
	}
}
