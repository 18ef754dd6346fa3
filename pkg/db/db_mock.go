package db

import (
	"github.com/stretchr/testify/mock"
	bolt "go.etcd.io/bbolt"

	"github.com/vulnboard/vulnboard/pkg/estimate"
	"github.com/vulnboard/vulnboard/pkg/types"
)

type MockOperation struct {
	mock.Mock
}

type PutPatchInfoArgs struct {
	Tx                      *bolt.Tx
	TxAnything              bool
	Source                  string
	SourceAnything          bool
	PkgName                 string
	PkgNameAnything         bool
	VulnerabilityID         string
	VulnerabilityIDAnything bool
	PatchInfo               types.PatchInfo
	PatchInfoAnything       bool
}

type PutPatchInfoReturns struct {
	Err error
}

type PutPatchInfoExpectation struct {
	Args    PutPatchInfoArgs
	Returns PutPatchInfoReturns
}

func (_m *MockOperation) ApplyPutPatchInfoExpectation(e PutPatchInfoExpectation) {
	var args []interface{}
	if e.Args.TxAnything {
		args = append(args, mock.Anything)
	} else {
		args = append(args, e.Args.Tx)
	}
	if e.Args.SourceAnything {
		args = append(args, mock.Anything)
	} else {
		args = append(args, e.Args.Source)
	}
	if e.Args.PkgNameAnything {
		args = append(args, mock.Anything)
	} else {
		args = append(args, e.Args.PkgName)
	}
	if e.Args.VulnerabilityIDAnything {
		args = append(args, mock.Anything)
	} else {
		args = append(args, e.Args.VulnerabilityID)
	}
	if e.Args.PatchInfoAnything {
		args = append(args, mock.Anything)
	} else {
		args = append(args, e.Args.PatchInfo)
	}
	_m.On("PutPatchInfo", args...).Return(e.Returns.Err)
}

func (_m *MockOperation) ApplyPutPatchInfoExpectations(expectations []PutPatchInfoExpectation) {
	for _, e := range expectations {
		_m.ApplyPutPatchInfoExpectation(e)
	}
}

type GetEstimateArgs struct {
	VulnerabilityID         string
	VulnerabilityIDAnything bool
}

type GetEstimateReturns struct {
	Estimate estimate.Estimate
	Err      error
}

type GetEstimateExpectation struct {
	Args    GetEstimateArgs
	Returns GetEstimateReturns
}

func (_m *MockOperation) ApplyGetEstimateExpectation(e GetEstimateExpectation) {
	var args []interface{}
	if e.Args.VulnerabilityIDAnything {
		args = append(args, mock.Anything)
	} else {
		args = append(args, e.Args.VulnerabilityID)
	}
	_m.On("GetEstimate", args...).Return(e.Returns.Estimate, e.Returns.Err)
}

func (_m *MockOperation) ApplyGetEstimateExpectations(expectations []GetEstimateExpectation) {
	for _, e := range expectations {
		_m.ApplyGetEstimateExpectation(e)
	}
}

// BatchUpdate records the call and, unless an error is configured, runs fn
// with a nil transaction so that the Put* expectations are exercised.
func (_m *MockOperation) BatchUpdate(fn func(*bolt.Tx) error) error {
	ret := _m.Called(fn)
	if err := ret.Error(0); err != nil {
		return err
	}
	return fn(nil)
}

func (_m *MockOperation) PutPatchInfo(a *bolt.Tx, b, c, d string, e types.PatchInfo) error {
	ret := _m.Called(a, b, c, d, e)
	return ret.Error(0)
}

func (_m *MockOperation) GetPackageVulnerabilities() (types.PackageVulnerabilities, error) {
	ret := _m.Called()
	ret0 := ret.Get(0)
	if ret0 == nil {
		return nil, ret.Error(1)
	}
	data, ok := ret0.(types.PackageVulnerabilities)
	if !ok {
		return nil, ret.Error(1)
	}
	return data, ret.Error(1)
}

func (_m *MockOperation) PutInstalledVersion(a *bolt.Tx, b, c string) error {
	ret := _m.Called(a, b, c)
	return ret.Error(0)
}

func (_m *MockOperation) GetInstalledVersions() (map[string]string, error) {
	ret := _m.Called()
	ret0 := ret.Get(0)
	if ret0 == nil {
		return nil, ret.Error(1)
	}
	versions, ok := ret0.(map[string]string)
	if !ok {
		return nil, ret.Error(1)
	}
	return versions, ret.Error(1)
}

func (_m *MockOperation) PutEstimate(a *bolt.Tx, b string, c estimate.Estimate) error {
	ret := _m.Called(a, b, c)
	return ret.Error(0)
}

func (_m *MockOperation) GetEstimate(a string) (estimate.Estimate, error) {
	ret := _m.Called(a)
	ret0 := ret.Get(0)
	if ret0 == nil {
		return estimate.Estimate{}, ret.Error(1)
	}
	e, ok := ret0.(estimate.Estimate)
	if !ok {
		return estimate.Estimate{}, ret.Error(1)
	}
	return e, ret.Error(1)
}

func (_m *MockOperation) GetMetadata() (Metadata, error) {
	ret := _m.Called()
	ret0 := ret.Get(0)
	if ret0 == nil {
		return Metadata{}, ret.Error(1)
	}
	metadata, ok := ret0.(Metadata)
	if !ok {
		return Metadata{}, ret.Error(1)
	}
	return metadata, ret.Error(1)
}

func (_m *MockOperation) SetMetadata(a Metadata) error {
	ret := _m.Called(a)
	return ret.Error(0)
}
