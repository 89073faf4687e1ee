package service

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"time"
)

const printerTimeout = 5 * time.Second

var ipv4Pattern = regexp.MustCompile(`^(\d{1,3})\.(\d{1,3})\.(\d{1,3})\.(\d{1,3})$`)

// LabelRequest is the relay payload: a raw ZPL document and the printer
// address it should be pushed to.
type LabelRequest struct {
	PrinterIP string `json:"printerIp"`
	Port      int    `json:"port"`
	ZPL       string `json:"zpl"`
}

// Validate checks a relay request before any network activity. The printer
// address must be dotted-quad IPv4 with a port in [1, 65535], and the ZPL
// body must be present.
func (r LabelRequest) Validate() error {
	if r.ZPL == "" {
		return fmt.Errorf("zpl is required")
	}
	if r.PrinterIP == "" {
		return fmt.Errorf("printerIp is required")
	}
	m := ipv4Pattern.FindStringSubmatch(r.PrinterIP)
	if m == nil {
		return fmt.Errorf("printerIp %q is not a valid IPv4 address", r.PrinterIP)
	}
	for _, octet := range m[1:] {
		n, err := strconv.Atoi(octet)
		if err != nil || n > 255 {
			return fmt.Errorf("printerIp %q is not a valid IPv4 address", r.PrinterIP)
		}
	}
	if r.Port < 1 || r.Port > 65535 {
		return fmt.Errorf("port %d is out of range [1, 65535]", r.Port)
	}
	return nil
}

// PrinterService relays ZPL payloads to a label printer over raw TCP. It is
// an external collaborator boundary: nothing in the data pipeline depends on
// it, and a printer failure never affects quote or tag state.
type PrinterService struct{}

// NewPrinterService creates a new PrinterService.
func NewPrinterService() *PrinterService {
	return &PrinterService{}
}

// SendLabel validates the request and writes the ZPL to the printer socket
// with a bounded dial and write deadline.
func (s *PrinterService) SendLabel(ctx context.Context, req LabelRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	addr := net.JoinHostPort(req.PrinterIP, strconv.Itoa(req.Port))
	dialer := net.Dialer{Timeout: printerTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to printer %s: %w", addr, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(printerTimeout)); err != nil {
		return fmt.Errorf("set printer write deadline: %w", err)
	}
	if _, err := conn.Write([]byte(req.ZPL)); err != nil {
		return fmt.Errorf("write zpl to printer %s: %w", addr, err)
	}
	return nil
}
