// Package vgg builds the VGG19 feature stack used for style transfer.
//
// Only the convolutional features of VGG19 are modeled: sixteen 3x3
// convolutions interleaved with ReLU activations and five 2x2 max
// pooling layers, matching the torchvision layout. The classifier head
// is never needed and never loaded.
//
// The network is a frozen feature extractor. It exposes named capture
// points (conv1_1 .. conv5_4, pool1 .. pool5) and Extract returns the
// requested activations from a single forward pass. Convolution outputs
// are captured before the ReLU that follows them.
//
// Weights come from a .nsw bundle, a SafeTensors checkpoint with
// torchvision names, or directly from an ONNX export of torchvision's
// vgg19; Load sniffs the file format. Either way the tensors must match
// the feature stack shapes exactly, or the load fails with
// ErrWeightMismatch.
package vgg
