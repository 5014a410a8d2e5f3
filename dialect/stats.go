package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/syssam/pgqb"
)

// QueryStats holds statement execution statistics.
type QueryStats struct {
	// TotalQueries is the total number of queries executed.
	TotalQueries atomic.Int64
	// TotalExecs is the total number of exec statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing statements.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of statements exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of statement errors, rendering failures included.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of query statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgQueryDuration returns the average statement duration.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgQueryDuration(),
		s.SlowQueries, s.Errors,
	)
}

// SlowQueryHook is a function called when a slow statement is detected.
// The query is re-rendered from the statement node in its rebound form.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)

// StatsDriver wraps a Driver with query statistics collection.
type StatsDriver struct {
	*Driver
	stats         *QueryStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
	mu            sync.RWMutex
}

// StatsOption configures the StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the threshold for slow statement detection.
// Statements taking longer than this duration will be counted as slow.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets a callback function for slow statements.
// The hook is called whenever a statement exceeds the slow threshold.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow statements to the default logger.
// This is a convenience wrapper around WithSlowQueryHook.
func WithSlowQueryLog() StatsOption {
	return WithSlowQueryHook(func(_ context.Context, query string, args []any, duration time.Duration) {
		slog.Warn("slow query detected", "duration", duration, "query", query, "args", args)
	})
}

// NewStatsDriver wraps a Driver with statistics collection.
//
// Example:
//
//	drv, _ := dialect.Open(dialect.Postgres, dsn)
//	statsDriver := dialect.NewStatsDriver(drv,
//	    dialect.WithSlowThreshold(200*time.Millisecond),
//	    dialect.WithSlowQueryLog(),
//	)
//
//	// Later, check statistics:
//	stats := statsDriver.QueryStats().Stats()
//	fmt.Println(stats)
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{
		Driver:        drv,
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the underlying QueryStats for reading statistics.
func (d *StatsDriver) QueryStats() *QueryStats {
	return d.stats
}

// SlowThreshold returns the current slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slowThreshold
}

// SetSlowThreshold updates the slow statement threshold.
func (d *StatsDriver) SetSlowThreshold(threshold time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slowThreshold = threshold
}

// Query executes a query node and records statistics.
func (d *StatsDriver) Query(ctx context.Context, node pgqb.QueryBuilder) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.Driver.Query(ctx, node)
	d.record(ctx, node, start, err, true)
	return rows, err
}

// Exec executes a statement node and records statistics.
func (d *StatsDriver) Exec(ctx context.Context, node pgqb.QueryBuilder) (sql.Result, error) {
	start := time.Now()
	res, err := d.Driver.Exec(ctx, node)
	d.record(ctx, node, start, err, false)
	return res, err
}

func (d *StatsDriver) record(ctx context.Context, node pgqb.QueryBuilder, start time.Time, err error, isQuery bool) {
	duration := time.Since(start)
	if isQuery {
		d.stats.TotalQueries.Add(1)
	} else {
		d.stats.TotalExecs.Add(1)
	}
	d.stats.TotalDuration.Add(int64(duration))

	if err != nil {
		d.stats.Errors.Add(1)
	}

	d.mu.RLock()
	threshold := d.slowThreshold
	hook := d.slowHook
	d.mu.RUnlock()

	if duration > threshold {
		d.stats.SlowQueries.Add(1)
		if hook != nil {
			// Rendering is deterministic, so the node re-renders to the
			// statement that ran. A node that failed to render has no
			// statement to report.
			query, args, rerr := node.Prepare()
			if rerr == nil {
				hook(ctx, Rebind(d.Dialect(), query), args, duration)
			}
		}
	}
}

// Tx starts a transaction whose statements are also recorded.
func (d *StatsDriver) Tx(ctx context.Context) (*StatsTx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsTx{Tx: tx, driver: d}, nil
}

// StatsTx wraps a transaction with statistics collection.
type StatsTx struct {
	*Tx
	driver *StatsDriver
}

// Query executes a query node within the transaction and records statistics.
func (tx *StatsTx) Query(ctx context.Context, node pgqb.QueryBuilder) (*sql.Rows, error) {
	start := time.Now()
	rows, err := tx.Tx.Query(ctx, node)
	tx.driver.record(ctx, node, start, err, true)
	return rows, err
}

// Exec executes a statement node within the transaction and records statistics.
func (tx *StatsTx) Exec(ctx context.Context, node pgqb.QueryBuilder) (sql.Result, error) {
	start := time.Now()
	res, err := tx.Tx.Exec(ctx, node)
	tx.driver.record(ctx, node, start, err, false)
	return res, err
}

// DebugDriver wraps a Driver with statement logging.
type DebugDriver struct {
	*Driver
	log func(context.Context, ...any)
}

// DebugOption configures the DebugDriver.
type DebugOption func(*DebugDriver)

// DebugWithLog sets a custom log function.
func DebugWithLog(logFunc func(context.Context, ...any)) DebugOption {
	return func(d *DebugDriver) {
		d.log = logFunc
	}
}

// NewDebugDriver wraps a Driver with statement logging.
//
// Example:
//
//	drv, _ := dialect.Open(dialect.Postgres, dsn)
//	debugDriver := dialect.NewDebugDriver(drv, dialect.DebugWithLog(func(ctx context.Context, v ...any) {
//	    log.Println(v...)
//	}))
func NewDebugDriver(drv *Driver, opts ...DebugOption) *DebugDriver {
	d := &DebugDriver{
		Driver: drv,
		log: func(_ context.Context, v ...any) {
			slog.Info(fmt.Sprint(v...))
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *DebugDriver) logNode(ctx context.Context, prefix string, node pgqb.QueryBuilder) {
	query, args, err := node.Prepare()
	if err != nil {
		d.log(ctx, fmt.Sprintf("%s render error: %v", prefix, err))
		return
	}
	d.log(ctx, fmt.Sprintf("%s: %s args: %v", prefix, Rebind(d.Dialect(), query), args))
}

// Query executes a query node and logs it.
func (d *DebugDriver) Query(ctx context.Context, node pgqb.QueryBuilder) (*sql.Rows, error) {
	d.logNode(ctx, "query", node)
	return d.Driver.Query(ctx, node)
}

// Exec executes a statement node and logs it.
func (d *DebugDriver) Exec(ctx context.Context, node pgqb.QueryBuilder) (sql.Result, error) {
	d.logNode(ctx, "exec", node)
	return d.Driver.Exec(ctx, node)
}

// Tx starts a transaction with statement logging.
func (d *DebugDriver) Tx(ctx context.Context) (*DebugTx, error) {
	d.log(ctx, "begin transaction")
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &DebugTx{Tx: tx, debug: d}, nil
}

// DebugTx wraps a transaction with statement logging.
type DebugTx struct {
	*Tx
	debug *DebugDriver
}

// Query executes a query node within the transaction and logs it.
func (tx *DebugTx) Query(ctx context.Context, node pgqb.QueryBuilder) (*sql.Rows, error) {
	tx.debug.logNode(ctx, "tx query", node)
	return tx.Tx.Query(ctx, node)
}

// Exec executes a statement node within the transaction and logs it.
func (tx *DebugTx) Exec(ctx context.Context, node pgqb.QueryBuilder) (sql.Result, error) {
	tx.debug.logNode(ctx, "tx exec", node)
	return tx.Tx.Exec(ctx, node)
}

// Commit commits the transaction and logs it.
func (tx *DebugTx) Commit() error {
	tx.debug.log(context.Background(), "commit transaction")
	return tx.Tx.Commit()
}

// Rollback rolls back the transaction and logs it.
func (tx *DebugTx) Rollback() error {
	tx.debug.log(context.Background(), "rollback transaction")
	return tx.Tx.Rollback()
}

// Ensure interfaces are implemented.
var (
	_ Querier = (*StatsDriver)(nil)
	_ Querier = (*StatsTx)(nil)
	_ Querier = (*DebugDriver)(nil)
	_ Querier = (*DebugTx)(nil)
)

// OpenWithStats opens a database connection with statistics collection
// enabled.
//
// Example:
//
//	drv, stats, err := dialect.OpenWithStats(dialect.Postgres, dsn,
//	    dialect.WithSlowThreshold(100*time.Millisecond),
//	    dialect.WithSlowQueryLog(),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Monitor statistics periodically
//	go func() {
//	    for range time.Tick(time.Minute) {
//	        s := stats.Stats()
//	        log.Printf("Query stats: %s", s)
//	    }
//	}()
func OpenWithStats(dialect, dsn string, opts ...StatsOption) (*StatsDriver, *QueryStats, error) {
	drv, err := Open(dialect, dsn)
	if err != nil {
		return nil, nil, err
	}
	statsDriver := NewStatsDriver(drv, opts...)
	return statsDriver, statsDriver.QueryStats(), nil
}
