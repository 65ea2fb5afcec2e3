package errors

// 공통 에러 코드 정의
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrConflict        = "CONFLICT"
	ErrUnavailable     = "UNAVAILABLE"
)

// codeMapping은 에러 코드별 HTTP 상태 코드 테이블입니다
var codeMapping = map[string]int{
	ErrInternal:        500,
	ErrNotFound:        404,
	ErrInvalidArgument: 400,
	ErrUnauthenticated: 401,
	ErrConflict:        409,
	ErrUnavailable:     503,
}

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	if status, ok := codeMapping[code]; ok {
		return status
	}
	return 500 // 알 수 없는 코드는 Internal Server Error
}
