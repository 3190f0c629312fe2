package main

import (
	"log"
)

func main() {
	p := &Program{}
	if err := p.Init(); nil != err {
		log.Fatalln(err)
	}
	defer p.Deinit()
	if err := p.Run(); nil != err {
		log.Fatalln(err)
	}
}
