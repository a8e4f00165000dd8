package main

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func withCLIArgs(t *testing.T, args []string, fn func()) {
	t.Helper()

	oldArgs := os.Args
	os.Args = append([]string{"storefront"}, args...)
	defer func() { os.Args = oldArgs }()

	fn()
}

func TestParseLineItems(t *testing.T) {
	items, err := parseLineItems(" 1:4, 7:2 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0] != (domain.LineItem{ProductID: 1, Quantity: 4}) {
		t.Fatalf("unexpected first item: %#v", items[0])
	}
	if items[1] != (domain.LineItem{ProductID: 7, Quantity: 2}) {
		t.Fatalf("unexpected second item: %#v", items[1])
	}
}

func TestParseLineItems_Invalid(t *testing.T) {
	cases := []string{"", "   ", "1", "1:", ":4", "abc:2", "1:abc", "1:2,3"}
	for _, spec := range cases {
		if _, err := parseLineItems(spec); err == nil {
			t.Fatalf("expected error for %q", spec)
		}
	}
}

func TestMainAddCustomerWithMemoryStore(t *testing.T) {
	t.Setenv("STOREFRONT_POSTGRES_DSN", "")
	t.Setenv("STOREFRONT_KAFKA_BROKERS", "")

	withCLIArgs(t, []string{"-store=memory", "add-customer", "-name=Acme", "-contact=acme@example.com"}, func() {
		main()
	})
}

func TestMainUnknownCommandExits(t *testing.T) {
	if os.Getenv("STOREFRONT_TEST_BAD_COMMAND") == "1" {
		withCLIArgs(t, []string{"no-such-command"}, func() {
			main()
		})
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMainUnknownCommandExits")
	cmd.Env = append(os.Environ(), "STOREFRONT_TEST_BAD_COMMAND=1", "STOREFRONT_STORE=memory")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with error")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() == 0 {
		t.Fatalf("expected non-zero exit code, got %v", err)
	}
}

func TestFailExits(t *testing.T) {
	if os.Getenv("STOREFRONT_TEST_FAIL_EXIT") == "1" {
		fail("forced failure %d", 42)
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFailExits")
	cmd.Env = append(os.Environ(), "STOREFRONT_TEST_FAIL_EXIT=1")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected subprocess to exit with error")
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() == 0 {
		t.Fatalf("expected non-zero exit code, got %v", err)
	}
}
