package controller

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/service"
)

// PrinterController relays ZPL label jobs to a network label printer.
type PrinterController struct {
	printer *service.PrinterService
}

// NewPrinterController creates a new PrinterController.
func NewPrinterController(printer *service.PrinterService) *PrinterController {
	return &PrinterController{printer: printer}
}

type printResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PrintLabel handles POST /print/label
func (c *PrinterController) PrintLabel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req service.LabelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ PrintLabel: failed to decode request body: %v", err)
		writeJSON(w, printResponse{Success: false, Error: "invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		log.Printf("❌ PrintLabel: invalid request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, printResponse{Success: false, Error: err.Error()})
		return
	}

	if err := c.printer.SendLabel(r.Context(), req); err != nil {
		log.Printf("❌ PrintLabel: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		writeJSON(w, printResponse{Success: false, Error: err.Error()})
		return
	}

	log.Printf("✅ PrintLabel: sent %d bytes of ZPL to %s:%d", len(req.ZPL), req.PrinterIP, req.Port)
	writeJSON(w, printResponse{Success: true})
}
