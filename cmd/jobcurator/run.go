package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"jobcurator/internal/config"
	"jobcurator/internal/domain"
	"jobcurator/internal/extract"
	"jobcurator/internal/fetch"
	ghats "jobcurator/internal/ingest/ats/greenhouse"
	"jobcurator/internal/report"
	"jobcurator/internal/scrape"
	ghscrape "jobcurator/internal/scrape/greenhouse"
	"jobcurator/internal/scrape/types"
	"jobcurator/internal/scrape/util"
	"jobcurator/internal/search"
	"jobcurator/internal/secrets"
)

var errEmptyTitle = errors.New("job title must not be empty")

func runCurate(cmd *cobra.Command, opts *options, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errEmptyTitle
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := setupLogger(cmd.ErrOrStderr(), opts.verbose)
	slog.SetDefault(logger)

	cfg, err := loadConfig(cmd, opts, logger)
	if err != nil {
		return err
	}

	limiter := util.NewHostLimiter(cfg.Delay())

	var htmlCache *fetch.HTMLCache
	if cfg.Cache.Enabled && !opts.noCache {
		htmlCache, err = fetch.OpenHTMLCache(cfg.Cache.HTMLDir, logger)
		if err != nil {
			return fmt.Errorf("open html cache: %w", err)
		}
	}
	urlCache := fetch.NewURLCache(cfg.Cache.URLFile)

	sources, titleFilter, err := buildSources(ctx, cfg, opts, title, limiter, htmlCache, urlCache, logger)
	if err != nil {
		return err
	}

	var fetcher fetch.Fetcher = fetch.NewClient(fetch.Options{
		Timeout:   cfg.Timeout(),
		UserAgent: cfg.Fetch.UserAgent,
		Limiter:   limiter,
		Logger:    logger,
	})
	if htmlCache != nil {
		fetcher = fetch.NewCachedFetcher(fetcher, htmlCache)
	}

	runner := &scrape.Runner{
		Fetcher:   fetcher,
		Extractor: extract.New(cfg.Rules(), logger),
		Filter: scrape.FilterOptions{
			Title:          titleFilter,
			Location:       cfg.Filters.Location,
			Company:        cfg.Filters.Company,
			Keywords:       cfg.Filters.Keywords,
			Days:           cfg.Filters.Days,
			IncludeUndated: cfg.Filters.IncludeUndated,
			Now:            time.Now(),
		},
		Log: logger,
	}

	started := time.Now()
	res, runErr := scrape.Execute(ctx, runner, sources)
	if runErr != nil {
		logger.Warn("run interrupted; presenting partial results", "err", runErr)
	}
	logger.Info("run finished",
		"pages", res.Stats.Pages, "extracted", res.Stats.Extracted,
		"kept", res.Stats.Kept, "skipped", res.Stats.Skipped,
		"took", time.Since(started).Round(time.Millisecond))

	if err := present(cmd, cfg, opts, title, res, started, logger); err != nil {
		return err
	}
	return runErr
}

// loadConfig layers defaults, the config file, .env, the environment, the
// keychain and finally the command-line flags.
func loadConfig(cmd *cobra.Command, opts *options, logger *slog.Logger) (config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, config.ErrConfigNotFound) && opts.configPath == "":
		logger.Debug("no config file; using defaults", "path", path)
	case err != nil:
		return cfg, err
	}

	if err := config.LoadDotEnv(); err != nil {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	config.ApplyEnv(&cfg)
	if err := secrets.FillSearchAPIKey(&cfg); err != nil {
		logger.Debug("keychain unavailable", "err", err)
	}

	f := cmd.Flags()
	if f.Changed("max-results") {
		cfg.Search.MaxResults = opts.maxResults
	}
	if f.Changed("location") {
		cfg.Filters.Location = opts.location
	}
	if f.Changed("company") {
		cfg.Filters.Company = opts.company
	}
	if f.Changed("keywords") {
		cfg.Filters.Keywords = scrape.ParseKeywords(opts.keywords)
	}
	if f.Changed("days") {
		cfg.Filters.Days = opts.days
	}
	if f.Changed("include-undated") {
		cfg.Filters.IncludeUndated = opts.undated
	}
	if f.Changed("export-dir") {
		cfg.Export.Dir = opts.exportDir
	}

	cfg, warns := config.Normalize(cfg)
	for _, w := range warns {
		logger.Warn("config", "warning", w)
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// buildSources picks where job pages come from. The returned title filter
// is set for modes that did not already narrow results by title.
func buildSources(
	ctx context.Context,
	cfg config.Config,
	opts *options,
	title string,
	limiter *util.HostLimiter,
	htmlCache *fetch.HTMLCache,
	urlCache *fetch.URLCache,
	logger *slog.Logger,
) ([]types.Source, string, error) {
	if opts.fromCache {
		if htmlCache == nil {
			return nil, "", errors.New("--from-cache needs the html cache (cache.enabled is false)")
		}
		return []types.Source{&scrape.HTMLCacheSource{Cache: htmlCache}}, title, nil
	}

	if len(opts.boards) > 0 || opts.discover {
		conn := ghats.New(ghats.Config{
			APIBase:   cfg.Boards.APIBase,
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   cfg.Timeout(),
			Limiter:   limiter,
			Board: ghscrape.New(ghscrape.Config{
				BoardBase: cfg.Boards.BoardBase,
				UserAgent: cfg.Fetch.UserAgent,
				Timeout:   cfg.Timeout(),
				Limiter:   limiter,
			}),
			Logger: logger,
		})
		companies := scrape.MapBoards(opts.boards)
		if opts.discover {
			found := conn.Discover(ctx, cfg.Boards.Known)
			logger.Info("discovered boards", "active", len(found), "probed", len(cfg.Boards.Known))
			companies = mergeCompanies(companies, found)
		}
		if len(companies) == 0 {
			return nil, "", errors.New("no boards to read: pass --board or configure boards.known")
		}
		return []types.Source{&scrape.BoardSource{Connector: conn, Companies: companies, Log: logger}}, title, nil
	}

	if opts.useURLCache {
		return []types.Source{&scrape.URLCacheSource{Cache: urlCache}}, "", nil
	}

	if err := config.RequireSearchCredentials(cfg); err != nil {
		return nil, "", err
	}
	g, err := search.NewGoogle(ctx, cfg.Search.APIKey, cfg.Search.EngineID, limiter, logger)
	if err != nil {
		return nil, "", err
	}
	return []types.Source{&scrape.SearchSource{
		Searcher:   g,
		Query:      title,
		MaxResults: cfg.Search.MaxResults,
		URLCache:   urlCache,
	}}, "", nil
}

func mergeCompanies(a, b []domain.Company) []domain.Company {
	seen := make(map[string]bool, len(a)+len(b))
	var out []domain.Company
	for _, c := range append(append([]domain.Company{}, a...), b...) {
		if seen[c.Slug] {
			continue
		}
		seen[c.Slug] = true
		out = append(out, c)
	}
	return out
}

func present(cmd *cobra.Command, cfg config.Config, opts *options, title string, res scrape.Result, started time.Time, logger *slog.Logger) error {
	if err := report.WriteTable(cmd.OutOrStdout(), res.Records); err != nil {
		return fmt.Errorf("print table: %w", err)
	}

	path := opts.export
	if path == "" {
		path = filepath.Join(cfg.Export.Dir, report.ExportName(started))
	}
	n, err := report.ExportCSV(path, res.Records)
	if err != nil {
		return err
	}
	logger.Info("exported csv", "path", path, "rows", len(res.Records), "size", humanize.Bytes(uint64(n)))
	fmt.Fprintf(cmd.OutOrStdout(), "\nResults exported to %s\n", path)

	if opts.markdown == "" {
		return nil
	}
	f, err := os.Create(opts.markdown)
	if err != nil {
		return fmt.Errorf("create markdown report: %w", err)
	}
	defer f.Close()
	s := report.Summary{
		Query:     title,
		Generated: started,
		Pages:     res.Stats.Pages,
		Skipped:   res.Stats.Skipped,
	}
	if err := report.WriteMarkdown(f, s, res.Records); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	logger.Info("wrote markdown report", "path", opts.markdown)
	return nil
}
