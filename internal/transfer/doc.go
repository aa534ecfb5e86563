// Package transfer implements neural style transfer as iterative
// optimization over image pixels.
//
// The engine holds a frozen feature extractor and synthesizes a new
// image by gradient descent: the target starts as a copy of the content
// image and is updated until its deep features match the content image
// while its Gram matrices match the style image.
//
//	backend := autodiff.New(cpu.New())
//	net, err := vgg.Load("vgg19.nsw", backend)
//	...
//	engine, err := transfer.New(transfer.DefaultConfig(), backend, net, logger)
//	...
//	target, history, err := engine.Run(content, style)
//
// Loss terms follow Gatys et al., "A Neural Algorithm of Artistic
// Style" (2015): mean squared error between content representations at
// one layer, plus a weighted sum of Gram matrix errors across several
// style layers.
package transfer
