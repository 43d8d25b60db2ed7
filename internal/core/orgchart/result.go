package orgchart

// ResultStatus はユーザー操作を伴うステップの結果種別です。
type ResultStatus int

const (
	ResultOK ResultStatus = iota
	ResultCancel
	ResultFail
)

func (s ResultStatus) String() string {
	switch s {
	case ResultOK:
		return "ok"
	case ResultCancel:
		return "cancel"
	case ResultFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Result は Ok(値) / Cancel / Fail の三値を表します。値は Ok のときだけ存在します。
type Result[T any] struct {
	status ResultStatus
	value  T
	cause  error
}

// Ok は値を持つ成功結果を返します。
func Ok[T any](value T) Result[T] {
	return Result[T]{status: ResultOK, value: value}
}

// Cancel はユーザーによる取り消しを表す結果を返します。
func Cancel[T any]() Result[T] {
	return Result[T]{status: ResultCancel}
}

// Fail は失敗結果を返します。cause は nil でも構いません。
func Fail[T any](cause error) Result[T] {
	return Result[T]{status: ResultFail, cause: cause}
}

// Status は結果種別を返します。
func (r Result[T]) Status() ResultStatus {
	return r.status
}

// IsOk は結果が Ok かどうかを返します。
func (r Result[T]) IsOk() bool {
	return r.status == ResultOK
}

// Value は Ok の場合に値と true を返します。
func (r Result[T]) Value() (T, bool) {
	if r.status != ResultOK {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Cause は Fail の原因を返します。
func (r Result[T]) Cause() error {
	return r.cause
}
