package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"floorsync/internal/domain"
	"floorsync/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Orders    service.OrderViewInterface
	Kitchen   service.KitchenServiceInterface
	Sessions  service.SessionServiceInterface
	Stats     service.ShiftStatsInterface
	Checkout  service.CheckoutServiceInterface
	Directory service.DirectoryServiceInterface
	Notifier  *service.MemoryNotifier
	ReceiptQR service.ReceiptQRGenerator
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/orders", h.listOrders).Methods("GET")
	r.HandleFunc("/api/orders/refresh", h.requestRefresh).Methods("POST")
	r.HandleFunc("/api/kitchen/queue", h.kitchenQueue).Methods("GET")
	r.HandleFunc("/api/kitchen/orders/{orderId}/start", h.startPreparation).Methods("POST")
	r.HandleFunc("/api/kitchen/orders/{orderId}/ready", h.markReady).Methods("POST")
	r.HandleFunc("/api/kitchen/orders/{orderId}/cancel", h.cancelOrder).Methods("POST")
	r.HandleFunc("/api/kitchen/orders/{orderId}/priority", h.togglePriority).Methods("POST")
	r.HandleFunc("/api/cash/session", h.activeSession).Methods("GET")
	r.HandleFunc("/api/cash/session/open", h.openSession).Methods("POST")
	r.HandleFunc("/api/cash/session/close", h.closeSession).Methods("POST")
	r.HandleFunc("/api/cash/shift-stats", h.shiftStats).Methods("GET")
	r.HandleFunc("/api/checkout/settle", h.settle).Methods("POST")
	r.HandleFunc("/api/receipts/{batchId}/qrcode", h.receiptQR).Methods("GET")
	r.HandleFunc("/api/notifications", h.notifications).Methods("GET")
}

type orderResponse struct {
	domain.Order
	WaiterName string `json:"waiter_name"`
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, refreshedAt := h.Orders.Snapshot()

	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		name := ""
		if h.Directory != nil {
			name = h.Directory.StaffName(r.Context(), o.WaiterID)
		}
		out = append(out, orderResponse{Order: o, WaiterName: name})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders":       out,
		"refreshed_at": refreshedAt,
	})
}

func (h *Handler) requestRefresh(w http.ResponseWriter, r *http.Request) {
	h.Orders.RequestRefresh()
	w.WriteHeader(http.StatusAccepted)
}

type kitchenTicket struct {
	domain.KitchenOrder
	ElapsedSeconds int `json:"elapsed_seconds"`
}

func (h *Handler) kitchenQueue(w http.ResponseWriter, r *http.Request) {
	queue := h.Kitchen.Queue()
	out := make([]kitchenTicket, 0, len(queue))
	for _, ticket := range queue {
		out = append(out, kitchenTicket{
			KitchenOrder:   ticket,
			ElapsedSeconds: int(service.Elapsed(ticket.ReceivedAt, ticket.ReadyAt) / time.Second),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) startPreparation(w http.ResponseWriter, r *http.Request) {
	h.kitchenTransition(w, r, h.Kitchen.StartPreparation)
}

func (h *Handler) markReady(w http.ResponseWriter, r *http.Request) {
	h.kitchenTransition(w, r, h.Kitchen.MarkReady)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	h.kitchenTransition(w, r, h.Kitchen.Cancel)
}

func (h *Handler) kitchenTransition(w http.ResponseWriter, r *http.Request,
	transition func(ctx context.Context, orderID string) error) {

	orderID := mux.Vars(r)["orderId"]
	if err := transition(r.Context(), orderID); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTicket):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, service.ErrBadTransition),
			errors.Is(err, domain.ErrInsufficientStock):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) togglePriority(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]
	if err := h.Kitchen.TogglePriority(orderID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) activeSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"session": h.Sessions.Active()})
}

func (h *Handler) openSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OpeningAmount float64 `json:"opening_amount"`
		Comment       string  `json:"comment"`
		StaffID       string  `json:"staff_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id, err := h.Sessions.Open(r.Context(), payload.OpeningAmount, payload.Comment, payload.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionAlreadyOpen):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": id})
}

func (h *Handler) closeSession(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Counted domain.CountedAmounts `json:"counted"`
		Comment string                `json:"comment"`
		StaffID string                `json:"staff_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	closed, err := h.Sessions.Close(r.Context(), payload.Counted, payload.Comment, payload.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoOpenSession):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, closed)
}

func (h *Handler) shiftStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Stats.Stats())
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OrderIDs []string       `json:"order_ids"`
		Splits   map[string]any `json:"splits"`
		StaffID  string         `json:"staff_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	settlement, err := h.Checkout.Settle(r.Context(), payload.OrderIDs, payload.Splits, payload.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoOpenSession):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, service.ErrNothingToSettle),
			errors.Is(err, service.ErrInsufficientTender),
			errors.Is(err, service.ErrOrderNotSettleable):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			// Includes the partial-failure case: payments recorded, some
			// orders left unpaid. The operator reconciles from the message.
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"settlement": settlement,
		"qr_link":    "/api/receipts/" + settlement.BatchID + "/qrcode",
	})
}

func (h *Handler) receiptQR(w http.ResponseWriter, r *http.Request) {
	if h.ReceiptQR == nil {
		http.Error(w, "receipt QR not configured", http.StatusNotFound)
		return
	}
	png, err := h.ReceiptQR.Generate(mux.Vars(r)["batchId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

func (h *Handler) notifications(w http.ResponseWriter, r *http.Request) {
	if h.Notifier == nil {
		writeJSON(w, http.StatusOK, []service.Notification{})
		return
	}
	writeJSON(w, http.StatusOK, h.Notifier.Drain())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
