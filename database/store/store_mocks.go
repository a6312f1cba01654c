// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package store

import (
	reflect "reflect"

	common "github.com/Fantom-foundation/legacy-import/common"
	types "github.com/Fantom-foundation/legacy-import/types"
	gomock "go.uber.org/mock/gomock"
)

// MockStore is a mock of Store interface.
type MockStore struct {
	ctrl     *gomock.Controller
	recorder *MockStoreMockRecorder
}

// MockStoreMockRecorder is the mock recorder for MockStore.
type MockStoreMockRecorder struct {
	mock *MockStore
}

// NewMockStore creates a new mock instance.
func NewMockStore(ctrl *gomock.Controller) *MockStore {
	mock := &MockStore{ctrl: ctrl}
	mock.recorder = &MockStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStore) EXPECT() *MockStoreMockRecorder {
	return m.recorder
}

// Close mocks base method.
func (m *MockStore) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockStoreMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockStore)(nil).Close))
}

// Flush mocks base method.
func (m *MockStore) Flush() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Flush")
	ret0, _ := ret[0].(error)
	return ret0
}

// Flush indicates an expected call of Flush.
func (mr *MockStoreMockRecorder) Flush() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Flush", reflect.TypeOf((*MockStore)(nil).Flush))
}

// GetAccount mocks base method.
func (m *MockStore) GetAccount(address common.Address) (types.Account, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetAccount", address)
	ret0, _ := ret[0].(types.Account)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetAccount indicates an expected call of GetAccount.
func (mr *MockStoreMockRecorder) GetAccount(address any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetAccount", reflect.TypeOf((*MockStore)(nil).GetAccount), address)
}

// GetBlockBody mocks base method.
func (m *MockStore) GetBlockBody(number uint64) (types.Body, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetBlockBody", number)
	ret0, _ := ret[0].(types.Body)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetBlockBody indicates an expected call of GetBlockBody.
func (mr *MockStoreMockRecorder) GetBlockBody(number any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetBlockBody", reflect.TypeOf((*MockStore)(nil).GetBlockBody), number)
}

// GetCanonicalHash mocks base method.
func (m *MockStore) GetCanonicalHash(number uint64) (common.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCanonicalHash", number)
	ret0, _ := ret[0].(common.Hash)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCanonicalHash indicates an expected call of GetCanonicalHash.
func (mr *MockStoreMockRecorder) GetCanonicalHash(number any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCanonicalHash", reflect.TypeOf((*MockStore)(nil).GetCanonicalHash), number)
}

// GetCode mocks base method.
func (m *MockStore) GetCode(hash common.Hash) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCode", hash)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCode indicates an expected call of GetCode.
func (mr *MockStoreMockRecorder) GetCode(hash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCode", reflect.TypeOf((*MockStore)(nil).GetCode), hash)
}

// GetConfig mocks base method.
func (m *MockStore) GetConfig(name string) ([]byte, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetConfig", name)
	ret0, _ := ret[0].([]byte)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetConfig indicates an expected call of GetConfig.
func (mr *MockStoreMockRecorder) GetConfig(name any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetConfig", reflect.TypeOf((*MockStore)(nil).GetConfig), name)
}

// GetHeader mocks base method.
func (m *MockStore) GetHeader(number uint64) (types.Header, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetHeader", number)
	ret0, _ := ret[0].(types.Header)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetHeader indicates an expected call of GetHeader.
func (mr *MockStoreMockRecorder) GetHeader(number any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetHeader", reflect.TypeOf((*MockStore)(nil).GetHeader), number)
}

// GetReceipt mocks base method.
func (m *MockStore) GetReceipt(txHash common.Hash) (types.Receipt, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetReceipt", txHash)
	ret0, _ := ret[0].(types.Receipt)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetReceipt indicates an expected call of GetReceipt.
func (mr *MockStoreMockRecorder) GetReceipt(txHash any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetReceipt", reflect.TypeOf((*MockStore)(nil).GetReceipt), txHash)
}

// GetStorage mocks base method.
func (m *MockStore) GetStorage(address common.Address, key common.Key) (common.Value, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetStorage", address, key)
	ret0, _ := ret[0].(common.Value)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetStorage indicates an expected call of GetStorage.
func (mr *MockStoreMockRecorder) GetStorage(address, key any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetStorage", reflect.TypeOf((*MockStore)(nil).GetStorage), address, key)
}

// PutAccount mocks base method.
func (m *MockStore) PutAccount(address common.Address, account *types.Account) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutAccount", address, account)
	ret0, _ := ret[0].(error)
	return ret0
}

// PutAccount indicates an expected call of PutAccount.
func (mr *MockStoreMockRecorder) PutAccount(address, account any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutAccount", reflect.TypeOf((*MockStore)(nil).PutAccount), address, account)
}

// PutBlock mocks base method.
func (m *MockStore) PutBlock(block *types.Block) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutBlock", block)
	ret0, _ := ret[0].(error)
	return ret0
}

// PutBlock indicates an expected call of PutBlock.
func (mr *MockStoreMockRecorder) PutBlock(block any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutBlock", reflect.TypeOf((*MockStore)(nil).PutBlock), block)
}

// PutCode mocks base method.
func (m *MockStore) PutCode(code []byte) (common.Hash, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutCode", code)
	ret0, _ := ret[0].(common.Hash)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PutCode indicates an expected call of PutCode.
func (mr *MockStoreMockRecorder) PutCode(code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutCode", reflect.TypeOf((*MockStore)(nil).PutCode), code)
}

// PutConfig mocks base method.
func (m *MockStore) PutConfig(name string, value []byte) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutConfig", name, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// PutConfig indicates an expected call of PutConfig.
func (mr *MockStoreMockRecorder) PutConfig(name, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutConfig", reflect.TypeOf((*MockStore)(nil).PutConfig), name, value)
}

// PutHeader mocks base method.
func (m *MockStore) PutHeader(header *types.Header) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutHeader", header)
	ret0, _ := ret[0].(error)
	return ret0
}

// PutHeader indicates an expected call of PutHeader.
func (mr *MockStoreMockRecorder) PutHeader(header any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutHeader", reflect.TypeOf((*MockStore)(nil).PutHeader), header)
}

// PutReceipt mocks base method.
func (m *MockStore) PutReceipt(receipt *types.Receipt) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutReceipt", receipt)
	ret0, _ := ret[0].(error)
	return ret0
}

// PutReceipt indicates an expected call of PutReceipt.
func (mr *MockStoreMockRecorder) PutReceipt(receipt any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutReceipt", reflect.TypeOf((*MockStore)(nil).PutReceipt), receipt)
}

// PutStorage mocks base method.
func (m *MockStore) PutStorage(address common.Address, key common.Key, value common.Value) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutStorage", address, key, value)
	ret0, _ := ret[0].(error)
	return ret0
}

// PutStorage indicates an expected call of PutStorage.
func (mr *MockStoreMockRecorder) PutStorage(address, key, value any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutStorage", reflect.TypeOf((*MockStore)(nil).PutStorage), address, key, value)
}
