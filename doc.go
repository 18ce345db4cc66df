// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Ryan Johnson

// Package pjlink implements a PJLink class 1 client for controlling network
// projectors over TCP.
//
// Each operation opens a fresh connection, reads the projector's greeting,
// sends a single command (prefixed with an MD5 digest when the projector asks
// for authentication), reads the reply, waits a short settle delay and closes
// the connection. No session is kept between calls.
//
// # Basic Usage
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//
//	p := pjlink.NewProjector("192.168.1.50",
//		pjlink.WithPassword("JBMIAProjectorLink"),
//	)
//
//	if _, err := p.PowerOn(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	status, err := p.PowerStatus(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(status) // "Warming Up"
//
// # Inputs and Muting
//
//	p.InputDigital(ctx, 1)   // %1INPT 31
//	p.AVShutterClose(ctx)    // %1AVMT 31
//	p.AudioMuteOff(ctx)      // %1AVMT 20
//
// # Configuration Files
//
//	cfg, err := pjlink.LoadConfig("/etc/pjlink/hall.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := cfg.NewProjector(pjlink.WithLogger(&pjlink.StandardLogger{}))
//
// # Error Handling
//
//	if pjlink.IsPJLinkError(err, pjlink.ErrUnreachable) {
//		log.Printf("Projector offline: %v", err)
//	}
//
// Power and mute queries never fail on an unrecognized reply; they return the
// last state that was decoded, starting from PowerUnknown and MuteUnknown.
package pjlink
