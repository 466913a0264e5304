package view

import (
	"context"
	"strconv"

	"github.com/nguyentranbao-ct/product-console/internal/form"
	"github.com/nguyentranbao-ct/product-console/internal/models"
	"github.com/nguyentranbao-ct/product-console/internal/usecase"
)

type DialogMode string

const (
	DialogCreate DialogMode = "create"
	DialogUpdate DialogMode = "update"
)

// ProductDialog is the form state of one opened create or update dialog.
// A new value is built every time a dialog opens.
type ProductDialog struct {
	Mode      DialogMode
	ProductID int
	Input     form.ProductInput
	Errors    form.FieldErrors
	Status    Status
	Alert     *Alert
}

func NewCreateDialog() *ProductDialog {
	return &ProductDialog{Mode: DialogCreate, Status: StatusIdle}
}

func NewUpdateDialog(p models.Product) *ProductDialog {
	return &ProductDialog{
		Mode:      DialogUpdate,
		ProductID: p.ID,
		Input:     form.ProductInputFrom(p),
		Status:    StatusIdle,
	}
}

func (d *ProductDialog) Title() string {
	if d.Mode == DialogUpdate {
		return "Update Product"
	}
	return "Create Product"
}

func (d *ProductDialog) SubmitLabel() string {
	switch {
	case d.Status == StatusSubmitting && d.Mode == DialogUpdate:
		return "Updating..."
	case d.Status == StatusSubmitting:
		return "Creating..."
	case d.Mode == DialogUpdate:
		return "Update"
	}
	return "Create"
}

// Action is the form target on the web front.
func (d *ProductDialog) Action() string {
	if d.Mode == DialogUpdate {
		return "/products/" + strconv.Itoa(d.ProductID)
	}
	return "/products"
}

func (d *ProductDialog) failedTitle() string {
	if d.Mode == DialogUpdate {
		return "Failed Update Product"
	}
	return "Failed Create Product"
}

// submit validates in and, when valid, hands the payload to send. It
// reports whether send succeeded.
func (d *ProductDialog) submit(ctx context.Context, in form.ProductInput, send func(context.Context, models.ProductPayload) error) bool {
	d.Input = in
	d.Alert = nil
	payload, errs := in.Parse()
	if d.Errors = errs; errs != nil {
		d.Status = StatusIdle
		return false
	}

	d.Status = StatusSubmitting
	if err := send(ctx, payload); err != nil {
		d.Status = StatusError
		d.Alert = &Alert{Title: d.failedTitle(), Message: summary(err)}
		return false
	}
	d.Status = StatusIdle
	return true
}

// DeleteDialog asks for confirmation before deleting one product.
type DeleteDialog struct {
	Product models.Product
	Alert   *Alert

	products usecase.ProductUsecase
	tab      *usecase.Tab
}

// Disabled reports whether a delete is in flight for the tab.
func (d *DeleteDialog) Disabled() bool {
	return d.products.Deleting(d.tab)
}

func (d *DeleteDialog) ConfirmLabel() string {
	if d.Disabled() {
		return "Deleting..."
	}
	return "I'm sure"
}

func (d *DeleteDialog) Action() string {
	return "/products/" + strconv.Itoa(d.Product.ID) + "/delete"
}
