package http

// Response represents a standard API response structure
// @Description Standard API response format
type Response struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents the error structure in responses
// @Description Error response structure
type Error struct {
	Code    string `json:"code,omitempty" example:"VALIDATION_ERROR"`
	Message string `json:"message,omitempty" example:"Invalid input parameters"`
	Field   string `json:"field,omitempty" example:"email"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Response
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination contains pagination information
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	PageSize     int   `json:"pageSize"`
}

// NewPagination derives the page count from total and pageSize
func NewPagination(page, pageSize int, total int64) *Pagination {
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &Pagination{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalRecords: total,
		PageSize:     pageSize,
	}
}
