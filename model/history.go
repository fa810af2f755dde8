package model

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go-ml.dev/pkg/zorros"
)

/*
History records epoch metrics of training runs into a sqlite database.
It's an observational sink only, training never reads it back.
*/
type History struct {
	db    *sql.DB
	runID int64
}

const historySchema = `
create table if not exists runs (
	id integer primary key autoincrement,
	started_at text not null,
	comment text not null default ''
);
create table if not exists epochs (
	run_id integer not null references runs(id),
	iteration integer not null,
	train_loss real not null,
	train_accuracy real not null,
	test_loss real not null,
	test_accuracy real not null,
	score real not null,
	primary key (run_id, iteration)
);`

/*
OpenHistory opens or creates the history database and starts a new run
*/
func OpenHistory(path string, comment string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zorros.Trace(err)
	}
	if _, err = db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, zorros.Wrapf(err, "failed to create history schema: %v", err.Error())
	}
	r, err := db.Exec(`insert into runs(started_at, comment) values(?, ?)`,
		time.Now().UTC().Format(time.RFC3339), comment)
	if err != nil {
		_ = db.Close()
		return nil, zorros.Trace(err)
	}
	runID, err := r.LastInsertId()
	if err != nil {
		_ = db.Close()
		return nil, zorros.Trace(err)
	}
	return &History{db: db, runID: runID}, nil
}

/*
Write stores one epoch row of the current run
*/
func (h *History) Write(iteration int, train, test Metrics, score float64) error {
	_, err := h.db.Exec(
		`insert or replace into epochs(run_id, iteration, train_loss, train_accuracy, test_loss, test_accuracy, score)
		 values(?, ?, ?, ?, ?, ?, ?)`,
		h.runID, iteration, train.Loss, train.Accuracy, test.Loss, test.Accuracy, score)
	if err != nil {
		return zorros.Wrapf(err, "failed to write history: %v", err.Error())
	}
	return nil
}

/*
Run returns the identifier of the current run
*/
func (h *History) Run() int64 {
	return h.runID
}

/*
Epochs returns recorded iterations count of the given run
*/
func (h *History) Epochs(run int64) (n int, err error) {
	row := h.db.QueryRow(`select count(*) from epochs where run_id = ?`, run)
	if err = row.Scan(&n); err != nil {
		return 0, zorros.Trace(err)
	}
	return
}

func (h *History) Close() error {
	return h.db.Close()
}
