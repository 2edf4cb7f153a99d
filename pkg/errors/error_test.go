package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeInvalidParameter, "invalid parameter: %s", "test")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter: test", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeArtifactProbeFailed, "artifact probe failed", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeArtifactProbeFailed, err.Code)
	suite.Equal("artifact probe failed", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeControlNotFound, cause, "control not found: %s", "download")
	suite.NotNil(err)
	suite.Equal(ErrCodeControlNotFound, err.Code)
	suite.Equal("control not found: download", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeArtifactProbeFailed, "artifact probe failed", cause)
	suite.Equal("[300] artifact probe failed: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeArtifactProbeFailed, "artifact probe failed", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal(ErrCodeInvalidParameter, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeArtifactProbeFailed, "artifact probe failed")
	err := Wrap(ErrCodeSessionFailed, "session failed", cause)
	// GetCode should return the outermost error's code
	suite.Equal(ErrCodeSessionFailed, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromStandardError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.True(HasCode(err, ErrCodeInvalidParameter))
	suite.False(HasCode(err, ErrCodeWindowNotFound))
}

func (suite *ErrorTestSuite) TestIsError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeArtifactProbeFailed, "artifact probe failed", cause)
	suite.True(Is(err, cause))
}

func (suite *ErrorTestSuite) TestAsError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	var codedErr *Error
	suite.True(As(err, &codedErr))
	suite.Equal(ErrCodeInvalidParameter, codedErr.Code)
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeWindowNotFound)
	suite.Equal(ErrorCode(300), ErrCodeArtifactProbeFailed)
	suite.Equal(ErrorCode(400), ErrCodeSessionRunning)
}

func (suite *ErrorTestSuite) TestIsEnvironmentFailure() {
	suite.True(IsEnvironmentFailure(New(ErrCodeWindowNotFound, "Historical Data window not found")))
	suite.True(IsEnvironmentFailure(Wrap(ErrCodeControlNotFound, "download button missing", errors.New("gone"))))
	suite.False(IsEnvironmentFailure(New(ErrCodeAutomationFailed, "click failed")))
	suite.False(IsEnvironmentFailure(errors.New("standard error")))
	suite.False(IsEnvironmentFailure(nil))
}

func (suite *ErrorTestSuite) TestFormatError() {
	err := NewFormatError("MNQ", "SYMBOL MM-YY", "invalid contract")
	suite.Equal("invalid contract", err.Error())
	suite.Equal("MNQ", err.Input)
	suite.Equal("SYMBOL MM-YY", err.Expected)
}

func (suite *ErrorTestSuite) TestNewFormatErrorf() {
	err := NewFormatErrorf("MNQ 3/26", "MM-YY", "invalid date segment in %q", "MNQ 3/26")
	suite.Equal(`invalid date segment in "MNQ 3/26"`, err.Message)
	suite.Equal("MM-YY", err.Expected)
}

func (suite *ErrorTestSuite) TestIsFormatError() {
	suite.True(IsFormatError(NewFormatError("x", "y", "z")))
	suite.True(IsFormatError(Wrap(ErrCodeInvalidContract, "bad contract", NewFormatError("x", "y", "z"))))
	suite.False(IsFormatError(errors.New("standard error")))
	suite.False(IsFormatError(New(ErrCodeInvalidParameter, "invalid parameter")))
	suite.False(IsFormatError(nil))
}
