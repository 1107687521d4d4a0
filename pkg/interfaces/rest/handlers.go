package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/vsinha/purchasing/pkg/application/dto"
	"github.com/vsinha/purchasing/pkg/domain/entities"
	"github.com/vsinha/purchasing/pkg/domain/repositories"
)

func (s *Server) listSupplierInfos(w http.ResponseWriter, r *http.Request) {
	var (
		infos []*entities.SupplierInfo
		err   error
	)
	if product := r.URL.Query().Get("product"); product != "" {
		infos, err = s.svc.SupplierInfos.ListByProduct(r.Context(), entities.PartNumber(product))
	} else {
		infos, err = s.svc.SupplierInfos.List(r.Context())
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, infos)
}

func (s *Server) createSupplierInfo(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSupplierInfoRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	info, err := s.svc.SupplierInfos.Create(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, info)
}

func (s *Server) getSupplierInfo(w http.ResponseWriter, r *http.Request) {
	id, resp := idParam(r)
	if resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	info, err := s.svc.SupplierInfos.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, info)
}

func (s *Server) updateSupplierInfoDelays(w http.ResponseWriter, r *http.Request) {
	id, resp := idParam(r)
	if resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	var req dto.UpdateDelaysRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	info, err := s.svc.SupplierInfos.UpdateDelays(r.Context(), id, req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, info)
}

func (s *Server) deleteSupplierInfo(w http.ResponseWriter, r *http.Request) {
	id, resp := idParam(r)
	if resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	if err := s.svc.SupplierInfos.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (s *Server) listCancelReasons(w http.ResponseWriter, r *http.Request) {
	reasons, err := s.svc.CancelReasons.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, reasons)
}

func (s *Server) createCancelReason(w http.ResponseWriter, r *http.Request) {
	var req dto.CancelReasonRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	reason, err := s.svc.CancelReasons.Create(r.Context(), req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, reason)
}

func (s *Server) renameCancelReason(w http.ResponseWriter, r *http.Request) {
	id, resp := idParam(r)
	if resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	var req dto.CancelReasonRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	reason, err := s.svc.CancelReasons.Rename(r.Context(), id, req.Name)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, reason)
}

func (s *Server) deleteCancelReason(w http.ResponseWriter, r *http.Request) {
	id, resp := idParam(r)
	if resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	if err := s.svc.CancelReasons.Delete(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	render.NoContent(w, r)
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := repositories.OrderFilter{}
	query := r.URL.Query()
	if state := query.Get("state"); state != "" {
		parsed, err := entities.ParseOrderState(state)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		filter.State = parsed
	}
	if archived := query.Get("include_archived"); archived != "" {
		include, err := strconv.ParseBool(archived)
		if err != nil {
			_ = render.Render(w, r, badRequest(err))
			return
		}
		filter.IncludeArchived = include
	}

	orders, err := s.svc.PurchaseOrders.ListOrders(r.Context(), filter)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	views := make([]dto.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, dto.NewOrderView(order))
	}
	render.JSON(w, r, views)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	order, err := s.svc.PurchaseOrders.CreateOrder(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, dto.NewOrderView(order))
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, resp := idParam(r)
	if resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	order, err := s.svc.PurchaseOrders.GetOrder(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, dto.NewOrderView(order))
}

func (s *Server) setOrderState(w http.ResponseWriter, r *http.Request) {
	id, resp := idParam(r)
	if resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	var req dto.SetStateRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	state, err := entities.ParseOrderState(req.State)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	order, err := s.svc.PurchaseOrders.SetState(r.Context(), id, state)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, dto.NewOrderView(order))
}

func (s *Server) setCancelReason(w http.ResponseWriter, r *http.Request) {
	id, resp := idParam(r)
	if resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	var req dto.SetCancelReasonRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	order, err := s.svc.PurchaseOrders.UpdateCancelReason(r.Context(), id, req.ReasonID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, dto.NewOrderView(order))
}

func (s *Server) openCancelWizard(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderIDsRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	action, err := s.svc.PurchaseOrders.OpenCancelWizard(r.Context(), req.OrderIDs)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, action)
}

func (s *Server) confirmCancel(w http.ResponseWriter, r *http.Request) {
	var req dto.ConfirmCancelRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	action, err := s.svc.PurchaseOrders.ConfirmCancel(r.Context(), req)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, action)
}

func (s *Server) toggleActive(w http.ResponseWriter, r *http.Request) {
	var req dto.OrderIDsRequest
	if resp := s.decode(r, &req); resp != nil {
		_ = render.Render(w, r, resp)
		return
	}
	orders, err := s.svc.PurchaseOrders.ToggleActive(r.Context(), req.OrderIDs)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	views := make([]dto.OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, dto.NewOrderView(order))
	}
	render.JSON(w, r, views)
}
