package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type positionMessage struct {
	DeviceID  string  `json:"device_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

// Sample zone around central Bishkek.
const (
	zoneCenterLat = 42.8746
	zoneCenterLon = 74.5698
)

func randomDeviceID() string {
	return fmt.Sprintf("DEV-%06d", rand.Intn(1000000))
}

func randomLat() float64 {
	return -90 + rand.Float64()*180
}

func randomLon() float64 {
	return -180 + rand.Float64()*360
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("supervision-mock-publisher")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	devicePool := make([]string, 5)
	for i := range devicePool {
		devicePool[i] = randomDeviceID()
	}

	log.Printf("connected to %s, publishing every %ds...", broker, intervalSec)
	log.Printf("device pool: %v", devicePool)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		did := devicePool[rand.Intn(len(devicePool))]

		var lat, lon float64
		// 70% chance to stay near the sample zone so both in-zone and
		// out-of-zone reports show up in the violation log.
		if rand.Float64() < 0.7 {
			lat = zoneCenterLat + (rand.Float64()-0.5)*0.02
			lon = zoneCenterLon + (rand.Float64()-0.5)*0.02
		} else {
			lat = randomLat()
			lon = randomLon()
		}

		msg := positionMessage{
			DeviceID:  did,
			Latitude:  lat,
			Longitude: lon,
			Timestamp: time.Now().Unix(),
		}

		payload, _ := json.Marshal(msg)
		topic := fmt.Sprintf("/supervision/device/%s/position", did)

		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
