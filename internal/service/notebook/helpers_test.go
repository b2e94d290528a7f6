package notebook

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	models "nicenote/internal/domain/models/notebook"
	"nicenote/internal/domain/repositories"
	repomocks "nicenote/internal/domain/repositories/mocks"
	"nicenote/internal/domain/repositories/notebook/mocks"

	"go.uber.org/mock/gomock"
)

var (
	t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	notes   *mocks.MockNoteRepository
	folders *mocks.MockFolderRepository
	tags    *mocks.MockTagRepository
	index   *mocks.MockSearchIndexRepository
	sync    *IndexSynchronizer
	svc     *noteService
	inTx    bool // set while an ExecTx callback runs
}

// newFixture wires a note service over mocks. Transactions and savepoints run fn
// inline and return its error, like the postgres manager does.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		notes:   mocks.NewMockNoteRepository(ctrl),
		folders: mocks.NewMockFolderRepository(ctrl),
		tags:    mocks.NewMockTagRepository(ctrl),
		index:   mocks.NewMockSearchIndexRepository(ctrl),
	}

	tx := repomocks.NewMockTransactionManager(ctrl)
	runInline := func(ctx context.Context, fn repositories.TxFn) error { return fn(ctx) }
	tx.EXPECT().ExecTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn repositories.TxFn) error {
		f.inTx = true
		defer func() { f.inTx = false }()
		return fn(ctx)
	}).AnyTimes()
	tx.EXPECT().ExecSavepoint(gomock.Any(), gomock.Any()).DoAndReturn(runInline).AnyTimes()
	f.sync = NewIndexSynchronizer(f.index, tx, NewContentAnalyzer(), models.SearchOptions{}, discardLogger())
	f.svc = NewNoteService(f.notes, f.folders, f.tags, tx, f.sync, NewContentAnalyzer(), discardLogger()).(*noteService)
	f.svc.now = func() time.Time { return t1 }
	return f
}

func ptr[T any](v T) *T { return &v }
