package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/davecgh/go-spew/spew"

	"github.com/jsmith/rasm16/asm"
	"github.com/jsmith/rasm16/machine"
)

func main() {
	var run bool
	var dump bool
	var verbose bool

	flag.BoolVar(&run, "r", false, "Run the assembled program")
	flag.BoolVar(&dump, "d", false, "Dump the decoded program structures")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected a single source file", os.Args[0])
	}
	name := flag.Arg(0)

	inf, err := os.Open(name)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}
	defer inf.Close()

	mach := machine.New()

	a := &asm.Assembler{Verbose: verbose}
	for equ, value := range mach.Defines() {
		a.Predefine(equ, value)
	}

	prog, err := a.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	if dump {
		spew.Dump(prog)
	}

	fmt.Print(prog.Listing())

	if !run {
		return
	}

	mach.Verbose = verbose
	err = mach.Run(prog)
	if err != nil {
		log.Fatalf("%v: %v", name, err)
	}

	for _, time := range slices.Sorted(maps.Keys(mach.Output)) {
		fmt.Printf("%v: %v\n", time, mach.Output[time])
	}
}
