package txindex

import (
	"context"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of the Store interface using testify/mock.
// It can be used in tests to assert exactly which index calls a cluster store makes.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Health(ctx context.Context) (int, string, error) {
	args := m.Called(ctx)
	return args.Int(0), args.String(1), args.Error(2)
}

func (m *MockStore) SetClusters(ctx context.Context, entries []*Entry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockStore) GetCluster(ctx context.Context, txid *chainhash.Hash) (*chainhash.Hash, error) {
	args := m.Called(ctx, txid)

	var hash *chainhash.Hash
	if args.Get(0) != nil {
		hash = args.Get(0).(*chainhash.Hash)
	}

	return hash, args.Error(1)
}

func (m *MockStore) RemoveTransaction(ctx context.Context, txid *chainhash.Hash) error {
	args := m.Called(ctx, txid)
	return args.Error(0)
}

func (m *MockStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
