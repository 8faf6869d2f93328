package availability

import "errors"

var (
	// ErrAvailabilityNotFound возвращается, когда окно доступности не найдено
	ErrAvailabilityNotFound = errors.New("availability.repository: availability not found")

	// ErrOverlap возвращается, когда БД отклонила пересекающееся окно (EXCLUDE-ограничение)
	ErrOverlap = errors.New("availability.repository: availability overlaps existing window")

	// ErrStaffNotFound возвращается, когда сотрудник, на которого ссылается окно, не существует
	ErrStaffNotFound = errors.New("availability.repository: staff not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
