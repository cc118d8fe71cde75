package doctor

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockCheck is a testify mock of Check in the mockery expecter style.
type MockCheck struct {
	mock.Mock
}

type MockCheck_Expecter struct {
	mock *mock.Mock
}

func (_m *MockCheck) EXPECT() *MockCheck_Expecter {
	return &MockCheck_Expecter{mock: &_m.Mock}
}

// Category provides a mock function with no fields
func (_m *MockCheck) Category() string {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Category")
	}
	return ret.Get(0).(string)
}

type MockCheck_Category_Call struct {
	*mock.Call
}

func (_e *MockCheck_Expecter) Category() *MockCheck_Category_Call {
	return &MockCheck_Category_Call{Call: _e.mock.On("Category")}
}

func (_c *MockCheck_Category_Call) Return(_a0 string) *MockCheck_Category_Call {
	_c.Call.Return(_a0)
	return _c
}

// Name provides a mock function with no fields
func (_m *MockCheck) Name() string {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Name")
	}
	return ret.Get(0).(string)
}

type MockCheck_Name_Call struct {
	*mock.Call
}

func (_e *MockCheck_Expecter) Name() *MockCheck_Name_Call {
	return &MockCheck_Name_Call{Call: _e.mock.On("Name")}
}

func (_c *MockCheck_Name_Call) Return(_a0 string) *MockCheck_Name_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *MockCheck_Name_Call) Maybe() *MockCheck_Name_Call {
	_c.Call.Maybe()
	return _c
}

// Run provides a mock function with given fields: ctx
func (_m *MockCheck) Run(ctx context.Context) *CheckResult {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for Run")
	}

	var r0 *CheckResult
	if rf, ok := ret.Get(0).(func(context.Context) *CheckResult); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*CheckResult)
	}
	return r0
}

type MockCheck_Run_Call struct {
	*mock.Call
}

func (_e *MockCheck_Expecter) Run(ctx interface{}) *MockCheck_Run_Call {
	return &MockCheck_Run_Call{Call: _e.mock.On("Run", ctx)}
}

func (_c *MockCheck_Run_Call) Return(_a0 *CheckResult) *MockCheck_Run_Call {
	_c.Call.Return(_a0)
	return _c
}

// NewMockCheck creates a new instance of MockCheck and registers cleanup
// that asserts expectations.
func NewMockCheck(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCheck {
	m := &MockCheck{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
