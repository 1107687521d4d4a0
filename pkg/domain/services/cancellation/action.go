package cancellation

import "github.com/google/uuid"

// Action types understood by the host window manager
const (
	ActWindow      = "ir.actions.act_window"
	ActWindowClose = "ir.actions.act_window_close"
)

const (
	// PurchaseOrderModel is the record model the wizard operates on
	PurchaseOrderModel = "purchase.order"
	// WizardModel is the transient model holding the chosen reason
	WizardModel = "purchase.order.cancel"
	// DefaultOrderIDsKey carries the orders preselected in the wizard
	DefaultOrderIDsKey = "default_purchase_order_ids"
)

// Action tells the caller which window to open or close next
type Action struct {
	Type     string         `json:"type"`
	Name     string         `json:"name,omitempty"`
	ResModel string         `json:"res_model,omitempty"`
	ViewMode string         `json:"view_mode,omitempty"`
	Target   string         `json:"target,omitempty"`
	Context  map[string]any `json:"context,omitempty"`
}

// CloseAction closes the current dialog
func CloseAction() Action {
	return Action{Type: ActWindowClose}
}

func openWizardAction(orderIDs []uuid.UUID) Action {
	return Action{
		Type:     ActWindow,
		Name:     "Reason for Cancellation",
		ResModel: WizardModel,
		ViewMode: "form",
		Target:   "new",
		Context:  map[string]any{DefaultOrderIDsKey: orderIDs},
	}
}
