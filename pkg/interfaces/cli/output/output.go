package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/services/cancellation"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

const dateLayout = "2006-01-02"

// Printer writes command results in text or JSON
type Printer struct {
	w      io.Writer
	format string
}

// NewPrinter creates a printer for the given format
func NewPrinter(w io.Writer, format string) (*Printer, error) {
	switch format {
	case FormatText, FormatJSON:
		return &Printer{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// LeadTime prints the three delay fields of a vendor offer
func (p *Printer) LeadTime(transport, supplier, delay int) error {
	if p.format == FormatJSON {
		return p.json(map[string]int{
			"transport_delay": transport,
			"supplier_delay":  supplier,
			"delay":           delay,
		})
	}
	_, err := fmt.Fprintf(p.w, "transport delay: %d\nsupplier delay:  %d\ndelay:           %d\n",
		transport, supplier, delay)
	return err
}

// SupplierInfos prints vendor offers
func (p *Printer) SupplierInfos(infos []*entities.SupplierInfo) error {
	if p.format == FormatJSON {
		return p.json(infos)
	}
	fmt.Fprintf(p.w, "%-36s %-12s %-15s %-8s %-10s %-9s %-8s %-5s\n",
		"ID", "Partner", "Part Number", "Min Qty", "Price", "Transport", "Supplier", "Delay")
	for _, info := range infos {
		fmt.Fprintf(p.w, "%-36s %-12s %-15s %-8d %-10s %-9d %-8d %-5d\n",
			info.ID,
			info.PartnerID,
			info.PartNumber,
			info.MinQty,
			info.Price.StringFixed(2),
			info.TransportDelay,
			info.SupplierDelay,
			info.Delay)
	}
	return nil
}

// Orders prints purchase orders with their lines
func (p *Printer) Orders(orders []*entities.PurchaseOrder) error {
	if p.format == FormatJSON {
		return p.json(orders)
	}
	for _, order := range orders {
		archived := ""
		if !order.Active {
			archived = " (archived)"
		}
		fmt.Fprintf(p.w, "%s %s%s\n", order.Name, order.State.Label(), archived)
		fmt.Fprintf(p.w, "  id:      %s\n", order.ID)
		fmt.Fprintf(p.w, "  partner: %s\n", order.PartnerID)
		fmt.Fprintf(p.w, "  ordered: %s\n", order.DateOrder.Format(dateLayout))
		if order.CancelReasonID != nil {
			fmt.Fprintf(p.w, "  reason:  %s\n", *order.CancelReasonID)
		}
		for _, line := range order.Lines {
			fmt.Fprintf(p.w, "  - %-15s %-6d %-10s planned %s ship by %s\n",
				line.PartNumber,
				line.Quantity,
				line.PriceUnit.StringFixed(2),
				line.DatePlanned.Format(dateLayout),
				line.SupplierDatePlanned.Format(dateLayout))
		}
		fmt.Fprintf(p.w, "  total:   %s\n", order.AmountTotal().StringFixed(2))
	}
	return nil
}

// Reasons prints the cancellation reason catalogue
func (p *Printer) Reasons(reasons []*entities.CancelReason) error {
	if p.format == FormatJSON {
		return p.json(reasons)
	}
	for _, reason := range reasons {
		fmt.Fprintf(p.w, "%-36s %s\n", reason.ID, reason.Name)
	}
	return nil
}

// Action prints a wizard action descriptor
func (p *Printer) Action(action cancellation.Action) error {
	if p.format == FormatJSON {
		return p.json(action)
	}
	fmt.Fprintf(p.w, "action: %s\n", action.Type)
	if action.Name != "" {
		fmt.Fprintf(p.w, "name:   %s\n", action.Name)
	}
	if action.ResModel != "" {
		fmt.Fprintf(p.w, "model:  %s\n", action.ResModel)
	}
	return nil
}
