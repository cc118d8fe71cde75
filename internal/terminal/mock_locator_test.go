package terminal

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLocator is a testify mock of Locator in the mockery expecter style.
type MockLocator struct {
	mock.Mock
}

type MockLocator_Expecter struct {
	mock *mock.Mock
}

func (_m *MockLocator) EXPECT() *MockLocator_Expecter {
	return &MockLocator_Expecter{mock: &_m.Mock}
}

// Locate provides a mock function with given fields: ctx, name
func (_m *MockLocator) Locate(ctx context.Context, name string) bool {
	ret := _m.Called(ctx, name)

	if len(ret) == 0 {
		panic("no return value specified for Locate")
	}

	var r0 bool
	if rf, ok := ret.Get(0).(func(context.Context, string) bool); ok {
		r0 = rf(ctx, name)
	} else {
		r0 = ret.Get(0).(bool)
	}
	return r0
}

type MockLocator_Locate_Call struct {
	*mock.Call
}

func (_e *MockLocator_Expecter) Locate(ctx interface{}, name interface{}) *MockLocator_Locate_Call {
	return &MockLocator_Locate_Call{Call: _e.mock.On("Locate", ctx, name)}
}

func (_c *MockLocator_Locate_Call) Return(found bool) *MockLocator_Locate_Call {
	_c.Call.Return(found)
	return _c
}

func (_c *MockLocator_Locate_Call) RunAndReturn(run func(context.Context, string) bool) *MockLocator_Locate_Call {
	_c.Call.Return(run)
	return _c
}

// NewMockLocator creates a new instance of MockLocator and registers cleanup
// that asserts expectations.
func NewMockLocator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocator {
	m := &MockLocator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
