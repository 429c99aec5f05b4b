package sync

import "aidpost/internal/domain/sync"

type batchInput struct {
	Body sync.BatchRequest
}

type batchOutput struct {
	Body sync.BatchResponse
}
