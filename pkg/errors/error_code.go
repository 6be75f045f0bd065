package errors

// ErrorCode identifies the kind of failure.
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidSignal        ErrorCode = 102
	ErrCodeInsufficientData     ErrorCode = 103
	ErrCodeInvalidVersion       ErrorCode = 105

	// State errors (200-299)
	ErrCodeQueryFailed   ErrorCode = 201
	ErrCodeStateWrite    ErrorCode = 202
	ErrCodeStateNotReady ErrorCode = 203

	// Strategy errors (400-499)
	ErrCodeStrategyNotLoaded    ErrorCode = 400
	ErrCodeStrategyRuntimeError ErrorCode = 401

	// Backtest errors (600-699)
	ErrCodeBacktestInitFailed   ErrorCode = 601
	ErrCodeBacktestConfigError  ErrorCode = 602
	ErrCodeBacktestNoStrategies ErrorCode = 603
	ErrCodeBacktestCancelled    ErrorCode = 604
	ErrCodeBacktestResultsDir   ErrorCode = 605

	// Chart errors (700-799)
	ErrCodeChartRenderFailed ErrorCode = 700

	// Diagram errors (800-899)
	ErrCodeDiagramRenderFailed ErrorCode = 800
	ErrCodeDiagramOpenFailed   ErrorCode = 801

	// Run log errors (900-999)
	ErrCodeRunLogReadFailed  ErrorCode = 900
	ErrCodeRunLogWriteFailed ErrorCode = 901

	ErrCodeCallbackFailed ErrorCode = 1000
)
