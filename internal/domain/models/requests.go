package models

// AddItemRequest carries the fields of the add-item form. Field-level
// validation (required item name, non-negative price) happens in the items
// service so the error taxonomy stays in one place.
type AddItemRequest struct {
	Date         string     `json:"date"`
	ItemName     string     `json:"item_name"`
	Qty          FlexString `json:"qty"`
	CustomerName string     `json:"customer_name"`
	Price        FlexString `json:"price"`
	DuePrice     FlexString `json:"due_price"`
}

// UpdateItemRequest is a partial record: empty fields keep the stored value,
// except customer_name and due_price which fall back to the NA sentinel the
// same way the add form does.
type UpdateItemRequest struct {
	Date         string     `json:"date"`
	ItemName     string     `json:"item_name"`
	Qty          FlexString `json:"qty"`
	CustomerName string     `json:"customer_name"`
	Price        FlexString `json:"price"`
	DuePrice     FlexString `json:"due_price"`
}

// BulkDeleteRequest names the records to remove.
type BulkDeleteRequest struct {
	UIDs []string `json:"uids" binding:"required"`
}

// BulkDeleteResult aggregates a fan-out of independent deletes. Every uid is
// attempted; Failed lists the ones whose delete call did not succeed.
type BulkDeleteResult struct {
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}

// Export type discriminators accepted by the export endpoint.
const (
	ExportSingle   = "single"
	ExportMultiple = "multiple"
	ExportRange    = "range"
)

// ExportRequest selects the calendar days to export.
type ExportRequest struct {
	Dates      []string `json:"dates" binding:"required"`
	ExportType string   `json:"exportType"`
}
