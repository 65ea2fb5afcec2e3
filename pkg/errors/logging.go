package errors

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogError는 에러를 Error 레벨의 구조화된 로그로 기록합니다
func LogError(logger *zap.Logger, err error, msg string, fields ...zap.Field) {
	LogErrorAt(logger, zapcore.ErrorLevel, err, msg, fields...)
}

// LogErrorAt는 지정한 레벨로 에러를 기록합니다.
// 에러 체인에 코드가 있으면 error_code 필드를 함께 남깁니다
func LogErrorAt(logger *zap.Logger, level zapcore.Level, err error, msg string, fields ...zap.Field) {
	if err == nil {
		return
	}

	ce := logger.Check(level, msg)
	if ce == nil {
		return
	}

	allFields := make([]zap.Field, 0, len(fields)+2)
	allFields = append(allFields, fields...)
	if code := codeIn(err); code != "" {
		allFields = append(allFields, zap.String("error_code", code))
	}
	allFields = append(allFields, zap.Error(err))

	ce.Write(allFields...)
}

func codeIn(err error) string {
	var coded Error
	if As(err, &coded) {
		return coded.Code()
	}
	return ""
}
