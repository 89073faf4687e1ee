package router

import (
	"net/http"

	"github.com/martin-sebastian/media-flatoutmotorcycles-sub000/app/controller"
)

type Controllers struct {
	Inventory *controller.InventoryController
	Quote     *controller.QuoteController
	Tag       *controller.TagController
	Display   *controller.DisplayController
	Printer   *controller.PrinterController
	Media     *controller.MediaController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Inventory table routes
	http.HandleFunc("/admin/inventory", controllers.Inventory.ListInventory)
	http.HandleFunc("/admin/inventory/refresh", controllers.Inventory.RefreshInventory)
	http.HandleFunc("/admin/inventory/export", controllers.Inventory.ExportInventory)

	// Quote routes
	http.HandleFunc("/quote", controllers.Quote.BuildQuote)
	http.HandleFunc("/quote/render", controllers.Quote.RenderQuote)
	http.HandleFunc("/quote/export", controllers.Quote.ExportQuote)

	// Tag routes
	http.HandleFunc("/hangtag/render", controllers.Tag.RenderHangTag)
	http.HandleFunc("/hangtag/export", controllers.Tag.ExportHangTag)
	http.HandleFunc("/keytag/render", controllers.Tag.RenderKeyTag)

	// Showroom display routes
	http.HandleFunc("/display/render", controllers.Display.RenderSlide)
	http.HandleFunc("/display/playlist", controllers.Display.Playlist)
	http.HandleFunc("/ws/display", controllers.Display.HandleWebSocket)

	// Optimized vehicle photos
	http.HandleFunc("/vehicle/image", controllers.Media.GetVehicleImage)

	// Label printer relay
	http.HandleFunc("/print/label", controllers.Printer.PrintLabel)
}
