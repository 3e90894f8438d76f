package sqlite

// Schema DDL for the run index.
const (
	createRuns = `CREATE TABLE runs (
    run_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    variant TEXT NOT NULL,
    max_value INTEGER NOT NULL,
    point_count INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	createPoints = `CREATE TABLE points (
    run_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    x REAL NOT NULL,
    y REAL NOT NULL,
    PRIMARY KEY (run_id, ordinal),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);`
)

const (
	idxRunsKindVariant = `CREATE INDEX idx_runs_kind_variant ON runs(kind, variant);`
	idxRunsCreated     = `CREATE INDEX idx_runs_created ON runs(created_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createRuns,
	createPoints,
}

var indexDDL = []string{
	idxRunsKindVariant,
	idxRunsCreated,
}
