package impl

import (
	"context"
	"strings"
	"testing"

	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	mockSvc "storefront/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDocumentService_Upload(t *testing.T) {
	storage := mockSvc.NewMockDocumentStorage(t)
	svc := NewDocumentService(DocumentServiceParams{Storage: storage, Logger: newDiscardLogger()})
	ctx := context.Background()

	upload := &service.DocumentUpload{Filename: "license.pdf", Size: 8, Content: strings.NewReader("%PDF-1.4")}
	storage.EXPECT().Upload(mock.Anything, upload).Return("https://docs.example.com/verification/a.pdf", nil).Once()

	url, err := svc.Upload(ctx, upload)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/verification/a.pdf", url)

	rejected := &service.DocumentUpload{Filename: "run.sh", Size: 9, Content: strings.NewReader("#!/bin/sh")}
	storage.EXPECT().Upload(mock.Anything, rejected).Return("", domainerrors.ErrDocumentRejected).Once()

	_, err = svc.Upload(ctx, rejected)
	require.ErrorIs(t, err, domainerrors.ErrDocumentRejected)

	_, err = svc.Upload(ctx, nil)
	require.ErrorIs(t, err, domainerrors.ErrDocumentRejected)
}
