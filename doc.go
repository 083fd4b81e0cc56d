// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package doorsim provides a naive clocked hardware simulator together with an API
to compose parts into chips, used to run the automatic door controller of the
door package as a circuit.

A Circuit is a set of wires and components. Every simulation step, each
component reads wire states from the current frame and writes the next frame;
frames are swapped once all components have run. Reads therefore never observe
writes of the same step, which gives registers their simultaneous update
semantics.

Parts are described by a PartSpec and wired with connection strings:

	hwlib.Synchronizer("in=command[0], out=close")

The library of parts lives in the hwlib package.
*/
package doorsim
