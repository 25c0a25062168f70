package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SscSPs/currency_convertor/internal/apperrors"
	"github.com/SscSPs/currency_convertor/internal/core/domain"
	portssvc "github.com/SscSPs/currency_convertor/internal/core/ports/services"
	"github.com/fatih/color"
)

const usage = `Commands:
  amount <text>           edit the amount
  from <code>             select the source currency (default, USD, EUR, GBP)
  to <code>               select the target currency
  reverse                 swap source and target
  submit                  convert
  clear                   reset the form
  rate <FROM> <TO> <v>    replace one conversion rate
  show                    print the form
  help                    print this help
  quit                    exit`

// repl drives the conversion form from line-oriented input.
type repl struct {
	form   portssvc.ConversionFormSvcFacade
	out    io.Writer
	notice func(a ...interface{}) string
	result func(a ...interface{}) string
	muted  func(a ...interface{}) string
}

func newREPL(form portssvc.ConversionFormSvcFacade, out io.Writer) *repl {
	return &repl{
		form:   form,
		out:    out,
		notice: color.New(color.FgRed, color.Bold).SprintFunc(),
		result: color.New(color.FgGreen).SprintFunc(),
		muted:  color.New(color.FgHiBlack).SprintFunc(),
	}
}

// run reads commands until quit or EOF.
func (r *repl) run(ctx context.Context, in io.Reader) error {
	r.render(r.form.State())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		if quit := r.exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the user asked to quit.
func (r *repl) exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	cmd = strings.ToLower(cmd)
	arg = strings.TrimSpace(arg)

	var (
		state domain.ConversionState
		err   error
	)
	switch cmd {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(r.out, usage)
		return false
	case "show":
		r.render(r.form.State())
		return false
	case "amount":
		state, err = r.form.EditAmount(ctx, arg)
	case "from", "to":
		var currency domain.Currency
		if currency, err = domain.ParseCurrency(arg); err != nil {
			break
		}
		if cmd == "from" {
			state, err = r.form.SelectFrom(ctx, currency)
		} else {
			state, err = r.form.SelectTo(ctx, currency)
		}
	case "reverse":
		state, err = r.form.Reverse(ctx)
	case "submit":
		state, err = r.form.Submit(ctx)
	case "clear":
		state, err = r.form.Clear(ctx)
	case "rate":
		state, err = r.updateRate(ctx, strings.Fields(arg))
	default:
		fmt.Fprintf(r.out, "%s\n", r.notice(fmt.Sprintf("Unknown command %q. Type help.", cmd)))
		return false
	}

	if err != nil {
		r.printError(err)
		if !errors.Is(err, apperrors.ErrValidation) {
			return false
		}
		state = r.form.State()
	}
	r.render(state)
	return false
}

func (r *repl) updateRate(ctx context.Context, args []string) (domain.ConversionState, error) {
	if len(args) != 3 {
		return r.form.State(), apperrors.NewValidationError("usage: rate <FROM> <TO> <value>")
	}
	from, err := domain.ParseCurrency(args[0])
	if err != nil {
		return r.form.State(), err
	}
	to, err := domain.ParseCurrency(args[1])
	if err != nil {
		return r.form.State(), err
	}
	rate, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return r.form.State(), apperrors.NewValidationError("rate must be a number")
	}
	return r.form.UpdateRate(ctx, from, to, rate)
}

func (r *repl) printError(err error) {
	if errors.Is(err, apperrors.ErrValidation) {
		fmt.Fprintln(r.out, r.notice(apperrors.Notice(err)))
		return
	}
	fmt.Fprintln(r.out, r.notice("Error: "+err.Error()))
}

func (r *repl) render(s domain.ConversionState) {
	fmt.Fprintf(r.out, "  From: %-7s Amount: %s\n", s.From.Label(), s.AmountText)
	if s.ResultVisible {
		fmt.Fprintf(r.out, "  To:   %-7s Result: %s\n", s.To.Label(), r.result(s.LastResult))
	} else {
		fmt.Fprintf(r.out, "  To:   %s\n", s.To.Label())
	}
	fmt.Fprintln(r.out, r.muted(s.Summary()))
}
