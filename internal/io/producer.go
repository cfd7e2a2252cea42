package io

import "sync"

type Producer interface {
	Produce(work chan *WorkUnit, errchan chan error, wg *sync.WaitGroup)
}

type Consumer interface {
	Consume(work chan *WorkUnit, errchan chan error, wg *sync.WaitGroup)
}
