package request

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
// Catalog ids are short strings and owned ids are UUIDs, so only presence is checked.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,max=64"`
}

// ListParams are the query parameters shared by list endpoints.
type ListParams struct {
	Query      string `form:"q" binding:"omitempty,max=200"`
	Category   string `form:"category"`
	Technology string `form:"technology"`
	Language   string `form:"language"`
	Sort       string `form:"sort" binding:"omitempty,oneof=newest popular favorites"`
	Page       int    `form:"page,default=1" binding:"min=1"`
}
