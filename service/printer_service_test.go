package service

import (
	"context"
	"io"
	"net"
	"strconv"
	"testing"
)

func TestLabelRequest_Validate(t *testing.T) {
	cases := []struct {
		name    string
		req     LabelRequest
		wantErr bool
	}{
		{"valid", LabelRequest{PrinterIP: "192.168.1.50", Port: 9100, ZPL: "^XA^XZ"}, false},
		{"missing zpl", LabelRequest{PrinterIP: "192.168.1.50", Port: 9100}, true},
		{"missing ip", LabelRequest{Port: 9100, ZPL: "^XA^XZ"}, true},
		{"hostname not ip", LabelRequest{PrinterIP: "printer.local", Port: 9100, ZPL: "^XA^XZ"}, true},
		{"octet out of range", LabelRequest{PrinterIP: "192.168.1.256", Port: 9100, ZPL: "^XA^XZ"}, true},
		{"too few octets", LabelRequest{PrinterIP: "192.168.1", Port: 9100, ZPL: "^XA^XZ"}, true},
		{"port zero", LabelRequest{PrinterIP: "192.168.1.50", Port: 0, ZPL: "^XA^XZ"}, true},
		{"port too high", LabelRequest{PrinterIP: "192.168.1.50", Port: 70000, ZPL: "^XA^XZ"}, true},
		{"port one ok", LabelRequest{PrinterIP: "10.0.0.1", Port: 1, ZPL: "^XA^XZ"}, false},
		{"port max ok", LabelRequest{PrinterIP: "10.0.0.1", Port: 65535, ZPL: "^XA^XZ"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("Validate(%+v) = nil, want error", tc.req)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("Validate(%+v) = %v, want nil", tc.req, err)
			}
		})
	}
}

func TestSendLabel_WritesZPLToSocket(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- string(data)
	}()

	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)

	zpl := "^XA^FO50,50^FDFL1234^FS^XZ"
	err = NewPrinterService().SendLabel(context.Background(), LabelRequest{
		PrinterIP: "127.0.0.1",
		Port:      port,
		ZPL:       zpl,
	})
	if err != nil {
		t.Fatalf("SendLabel: %v", err)
	}

	if got := <-received; got != zpl {
		t.Fatalf("printer received %q, want %q", got, zpl)
	}
}

func TestSendLabel_ConnectionRefused(t *testing.T) {
	// Grab a free port and close it so the dial is refused.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	_, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)
	ln.Close()

	err = NewPrinterService().SendLabel(context.Background(), LabelRequest{
		PrinterIP: "127.0.0.1",
		Port:      port,
		ZPL:       "^XA^XZ",
	})
	if err == nil {
		t.Fatal("expected dial error for a closed port")
	}
}
