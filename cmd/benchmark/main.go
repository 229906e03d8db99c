package main

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/joripage/exchange-dev/pkg/exchange"
)

const (
	numOrders = 1_000_000
	minPrice  = 100.0
	maxPrice  = 200.0
	maxQty    = 100
)

type counterSink struct {
	trades int64
	qty    int64
}

func (c *counterSink) OnTrade(t exchange.Trade) {
	atomic.AddInt64(&c.trades, 1)
	atomic.AddInt64(&c.qty, t.Qty)
}

func main() {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	ex := exchange.NewExchange(nil)
	sink := &counterSink{}
	ex.RegisterSink(sink)

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		side := exchange.BUY
		if rnd.Intn(2) == 0 {
			side = exchange.SELL
		}
		price := minPrice + rnd.Float64()*(maxPrice-minPrice)
		price = float64(int(price*100)) / 100
		qty := rnd.Int63n(maxQty) + 1

		if err := ex.SubmitOrder(side, "ABC", qty, price); err != nil {
			panic(err)
		}
	}
	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("Total Orders     : %d\n", numOrders)
	fmt.Printf("Total Trades     : %d\n", atomic.LoadInt64(&sink.trades))
	fmt.Printf("Total Matched Qty: %d\n", atomic.LoadInt64(&sink.qty))
	fmt.Printf("Time Taken       : %s\n", elapsed)
	fmt.Printf("Orders/sec       : %.0f\n", float64(numOrders)/elapsed.Seconds())
}
