package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/mock/gomock"

	"nicenote/internal/domain"
	models "nicenote/internal/domain/models/notebook"
	svc "nicenote/internal/domain/services/notebook"
	"nicenote/internal/domain/services/notebook/mocks"
)

func TestSeed_ImportsEverySample(t *testing.T) {
	ctrl := gomock.NewController(t)
	notes := mocks.NewMockNoteService(ctrl)
	folders := mocks.NewMockFolderService(ctrl)
	tags := mocks.NewMockTagService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	folders.EXPECT().CreateFolder(gomock.Any(), &svc.CreateFolderRequest{Name: SampleFolder}).
		Return(&models.Folder{ID: "f-1", Name: SampleFolder}, nil)
	tags.EXPECT().CreateTag(gomock.Any(), gomock.Any()).Return(&models.Tag{ID: "t-1"}, nil)
	tags.EXPECT().CreateTag(gomock.Any(), gomock.Any()).Return(nil, &domain.ConflictError{Message: "exists"})

	var filenames []string
	notes.EXPECT().ImportNote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *svc.ImportNoteRequest) (*models.Note, error) {
			if req.FolderID == nil || *req.FolderID != "f-1" {
				t.Errorf("folder = %v", req.FolderID)
			}
			filenames = append(filenames, req.Filename)
			return &models.Note{ID: req.Filename}, nil
		}).Times(3)

	n, err := NewSeeder(notes, folders, tags, logger).Seed(context.Background())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if n != 3 || len(filenames) != 3 {
		t.Errorf("imported %d (%v)", n, filenames)
	}
}

func TestSeed_FolderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	folders := mocks.NewMockFolderService(ctrl)
	boom := errors.New("db down")

	folders.EXPECT().CreateFolder(gomock.Any(), gomock.Any()).Return(nil, boom)

	s := NewSeeder(mocks.NewMockNoteService(ctrl), folders, mocks.NewMockTagService(ctrl),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if _, err := s.Seed(context.Background()); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}
